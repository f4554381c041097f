package repo

type (
	ComparisonOp   string
	OrderDirection string
	QueryField     = string
)

// Comparison operators carried by a Condition. The sql layer owns the
// translation to SQL text.
const (
	OpEqual       ComparisonOp = "eq"
	OpNotEqual    ComparisonOp = "neq"
	OpGreaterThan ComparisonOp = "gt"
	OpLessThan    ComparisonOp = "lt"
	OpContains    ComparisonOp = "contains"
	OpIsNull      ComparisonOp = "isnull"
	OpNotNull     ComparisonOp = "notnull"
)

const (
	Desc OrderDirection = "desc"
	Asc  OrderDirection = "asc"
)

// Column names shared by the query builders and the sql layer.
const (
	IDField                QueryField = "id"
	KeyNameField           QueryField = "key_name"
	KeyTypeField           QueryField = "key_type"
	KeySequenceNumberField QueryField = "key_sequence_number"
	FlexNumberField        QueryField = "flex_number"
	RentalObjectCodeField  QueryField = "rental_object_code"
	KeySystemIDField       QueryField = "key_system_id"
	DisposedField          QueryField = "disposed"
	DisposedAtField        QueryField = "disposed_at"
	SystemCodeField        QueryField = "system_code"
	NameField              QueryField = "name"
	LoanTypeField          QueryField = "loan_type"
	ContactField           QueryField = "contact"
	LoanedAtField          QueryField = "loaned_at"
	ReturnedAtField        QueryField = "returned_at"
	AvailableFromField     QueryField = "available_to_next_tenant_from"
	KeyLoanIDField         QueryField = "key_loan_id"
	ReceiptTypeField       QueryField = "receipt_type"
	ReceiptIDField         QueryField = "receipt_id"
	FileIDField            QueryField = "file_id"
	KeyIDField             QueryField = "key_id"
	EventTypeField         QueryField = "event_type"
	StatusField            QueryField = "status"
	WorkOrderCodeField     QueryField = "work_order_code"
	CardNumberField        QueryField = "card_number"
	HolderContactField     QueryField = "holder_contact"
	DisabledField          QueryField = "disabled"
	ActionField            QueryField = "action"
	ActorField             QueryField = "actor"
	CreatedField           QueryField = "created_at"
)

// Condition is a single predicate of a query. Conditions on the same
// Query combine with AND. Build them with the constructors below so the
// operator and value always line up.
type Condition struct {
	Field QueryField
	Op    ComparisonOp
	Value any
}

// Eq matches rows whose field equals v. A slice value turns into an IN
// clause.
func Eq(field QueryField, v any) Condition {
	return Condition{Field: field, Op: OpEqual, Value: v}
}

func NotEq(field QueryField, v any) Condition {
	return Condition{Field: field, Op: OpNotEqual, Value: v}
}

func Gt(field QueryField, v any) Condition {
	return Condition{Field: field, Op: OpGreaterThan, Value: v}
}

func Lt(field QueryField, v any) Condition {
	return Condition{Field: field, Op: OpLessThan, Value: v}
}

// Like matches rows whose field contains v, case-insensitively.
func Like(field QueryField, v string) Condition {
	return Condition{Field: field, Op: OpContains, Value: v}
}

func IsNull(field QueryField) Condition {
	return Condition{Field: field, Op: OpIsNull}
}

func NotNull(field QueryField) Condition {
	return Condition{Field: field, Op: OpNotNull}
}

// OrderField sorts a result set on one column.
type OrderField struct {
	Field     QueryField
	Direction OrderDirection
}

// Query describes what a repository operation should touch: which rows,
// which associations to load, how to sort and how much of the result to
// return.
type Query struct {
	Limit  int
	Offset int

	// Conditions form the WHERE clause.
	Conditions []Condition

	// Preloads lists associations to eager-load on reads.
	Preloads []string

	// UpdateAllFields makes Patch write zero values too. Without it
	// only non-zero fields reach the database.
	UpdateAllFields bool

	Orders []OrderField
}

func NewQuery() *Query {
	return &Query{}
}

func (q *Query) Where(conds ...Condition) *Query {
	q.Conditions = append(q.Conditions, conds...)
	return q
}

func (q *Query) Preload(assocs ...string) *Query {
	q.Preloads = append(q.Preloads, assocs...)
	return q
}

func (q *Query) UpdateAll(b bool) *Query {
	q.UpdateAllFields = b
	return q
}

func (q *Query) SetLimit(limit int) *Query {
	q.Limit = limit
	return q
}

func (q *Query) SetOffset(offset int) *Query {
	q.Offset = offset
	return q
}

func (q *Query) Order(orderFields ...OrderField) *Query {
	q.Orders = append(q.Orders, orderFields...)
	return q
}
