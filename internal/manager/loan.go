package manager

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/clients"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/model"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/utils/ptr"
)

const loanScanBatchSize = repo.DefaultLimit

// errStopScan ends a batch scan early once a match is found.
var errStopScan = errors.New("stop scan")

type LoanSearchFilter struct {
	Active   *bool
	Contact  string
	KeyID    *uuid.UUID
	LoanType model.LoanType
}

// LoanPatch carries the updatable loan fields. The key set, loan type and
// primary contact are fixed once the loan exists; transfers create a new
// loan instead.
type LoanPatch struct {
	Contact2                  *string
	ContactPerson             *string
	Description               *string
	AvailableToNextTenantFrom *time.Time
}

// TransferRequest describes the new borrower taking over the keys of an
// active loan.
type TransferRequest struct {
	LoanType      model.LoanType
	Contact       string
	Contact2      *string
	ContactPerson *string
	Description   *string
}

type LoanManager struct {
	repo     repo.Repo
	activity *ActivityManager
	clients  *clients.Factory
}

func NewLoanManager(
	repository repo.Repo,
	activity *ActivityManager,
	clientsFactory *clients.Factory,
) *LoanManager {
	return &LoanManager{
		repo:     repository,
		activity: activity,
		clients:  clientsFactory,
	}
}

func (m *LoanManager) ListLoans(
	ctx context.Context,
	filter LoanSearchFilter,
	pagination repo.Pagination,
) ([]*model.KeyLoan, int, error) {
	if filter.LoanType != "" && !filter.LoanType.Valid() {
		return nil, 0, ErrInvalidLoanType
	}

	if filter.KeyID != nil {
		return m.listLoansHoldingKey(ctx, *filter.KeyID, filter, pagination)
	}

	query := pagination.Apply(m.loanQuery(filter)).
		Order(repo.OrderField{Field: repo.LoanedAtField, Direction: repo.Desc})

	var loans []*model.KeyLoan

	count, err := m.repo.List(ctx, model.KeyLoan{}, &loans, *query)
	if err != nil {
		return nil, 0, errs.Wrap(ErrListLoansDB, err)
	}

	return loans, count, nil
}

// CreateLoan hands the given keys out to a borrower. All keys must exist,
// be undisposed and free of active loans; the membership check re-runs
// inside the transaction so two concurrent loans cannot both take the same
// key.
func (m *LoanManager) CreateLoan(
	ctx context.Context,
	loan *model.KeyLoan,
	keyIDs []uuid.UUID,
) (*model.KeyLoan, error) {
	if !loan.LoanType.Valid() {
		return nil, ErrInvalidLoanType
	}

	if loan.Contact == "" {
		return nil, ErrLoanContactRequired
	}

	keyIDs = dedupeIDs(keyIDs)
	if len(keyIDs) == 0 {
		return nil, ErrLoanKeysRequired
	}

	err := m.consultAdapters(ctx, loan)
	if err != nil {
		return nil, err
	}

	if loan.ID == uuid.Nil {
		loan.ID = uuid.New()
	}

	if loan.LoanedAt.IsZero() {
		loan.LoanedAt = time.Now().UTC()
	}

	err = loan.SetKeyIDs(keyIDs)
	if err != nil {
		return nil, errs.Wrap(ErrCreateLoanDB, err)
	}

	ctx = model.LogWithLoan(ctx, loan)

	err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		err := checkKeysLoanable(ctx, tx, keyIDs)
		if err != nil {
			return err
		}

		err = tx.Create(ctx, loan)
		if err != nil {
			return errs.Wrap(ErrCreateLoanDB, err)
		}

		return m.recordLoanActivity(ctx, tx, loan, keyIDs, ActionLoanCreated,
			"keys loaned to "+loan.Contact)
	})
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "keys loaned", slog.Int("keys", len(keyIDs)))

	return loan, nil
}

func (m *LoanManager) GetLoan(ctx context.Context, id uuid.UUID) (*model.KeyLoan, error) {
	loan := &model.KeyLoan{ID: id}

	_, err := m.repo.First(ctx, loan, *repo.NewQuery())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errs.Wrap(ErrLoanNotFound, err)
		}

		return nil, errs.Wrap(ErrGetLoanDB, err)
	}

	return loan, nil
}

func (m *LoanManager) PatchLoan(
	ctx context.Context,
	id uuid.UUID,
	patch LoanPatch,
) (*model.KeyLoan, error) {
	loan, err := m.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Contact2 != nil {
		loan.Contact2 = patch.Contact2
	}

	if patch.ContactPerson != nil {
		loan.ContactPerson = patch.ContactPerson
	}

	if patch.Description != nil {
		loan.Description = patch.Description
	}

	if patch.AvailableToNextTenantFrom != nil {
		loan.AvailableToNextTenantFrom = patch.AvailableToNextTenantFrom
	}

	_, err = m.repo.Patch(ctx, loan, *repo.NewQuery())
	if err != nil {
		return nil, errs.Wrap(ErrUpdateLoanDB, err)
	}

	return loan, nil
}

// ReturnLoan closes an active loan. Returning twice is a conflict, not a
// second write. availableFrom defaults to the return time.
func (m *LoanManager) ReturnLoan(
	ctx context.Context,
	id uuid.UUID,
	availableFrom *time.Time,
) (*model.KeyLoan, error) {
	loan := &model.KeyLoan{ID: id}

	err := m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		_, err := tx.First(ctx, loan, *repo.NewQuery())
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errs.Wrap(ErrLoanNotFound, err)
			}

			return errs.Wrap(ErrGetLoanDB, err)
		}

		if !loan.Active() {
			return ErrLoanAlreadyReturned
		}

		now := time.Now().UTC()
		loan.ReturnedAt = &now

		if availableFrom != nil {
			loan.AvailableToNextTenantFrom = availableFrom
		} else {
			loan.AvailableToNextTenantFrom = &now
		}

		_, err = tx.Patch(ctx, loan, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateLoanDB, err)
		}

		keyIDs, err := loan.KeyIDs()
		if err != nil {
			return errs.Wrap(ErrGetLoanDB, err)
		}

		return m.recordLoanActivity(ctx, tx, loan, keyIDs, ActionLoanReturned,
			"keys returned by "+loan.Contact)
	})
	if err != nil {
		return nil, err
	}

	log.Info(model.LogWithLoan(ctx, loan), "loan returned")

	return loan, nil
}

// TransferLoan returns an active loan and immediately reloans its keys to a
// new borrower in one transaction.
func (m *LoanManager) TransferLoan(
	ctx context.Context,
	id uuid.UUID,
	req TransferRequest,
) (*model.KeyLoan, error) {
	if !req.LoanType.Valid() {
		return nil, ErrInvalidLoanType
	}

	if req.Contact == "" {
		return nil, ErrLoanContactRequired
	}

	newLoan := &model.KeyLoan{
		ID:            uuid.New(),
		LoanType:      req.LoanType,
		Contact:       req.Contact,
		Contact2:      req.Contact2,
		ContactPerson: req.ContactPerson,
		Description:   req.Description,
		LoanedAt:      time.Now().UTC(),
	}

	err := m.consultAdapters(ctx, newLoan)
	if err != nil {
		return nil, err
	}

	err = m.repo.Transaction(ctx, func(ctx context.Context, tx repo.Repo) error {
		current := &model.KeyLoan{ID: id}

		_, err := tx.First(ctx, current, *repo.NewQuery())
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return errs.Wrap(ErrLoanNotFound, err)
			}

			return errs.Wrap(ErrGetLoanDB, err)
		}

		if !current.Active() {
			return ErrLoanAlreadyReturned
		}

		keyIDs, err := current.KeyIDs()
		if err != nil {
			return errs.Wrap(ErrGetLoanDB, err)
		}

		now := time.Now().UTC()
		current.ReturnedAt = &now
		current.AvailableToNextTenantFrom = &now

		_, err = tx.Patch(ctx, current, *repo.NewQuery())
		if err != nil {
			return errs.Wrap(ErrUpdateLoanDB, err)
		}

		// The source loan is returned above, so the re-check only trips on
		// disposed keys or a competing loan.
		err = checkKeysLoanable(ctx, tx, keyIDs)
		if err != nil {
			return err
		}

		err = newLoan.SetKeyIDs(keyIDs)
		if err != nil {
			return errs.Wrap(ErrCreateLoanDB, err)
		}

		err = tx.Create(ctx, newLoan)
		if err != nil {
			return errs.Wrap(ErrCreateLoanDB, err)
		}

		err = m.recordLoanActivity(ctx, tx, current, keyIDs, ActionLoanTransferred,
			"keys transferred to "+newLoan.Contact)
		if err != nil {
			return err
		}

		return m.recordLoanActivity(ctx, tx, newLoan, keyIDs, ActionLoanCreated,
			"keys loaned to "+newLoan.Contact)
	})
	if err != nil {
		return nil, err
	}

	log.Info(model.LogWithLoan(ctx, newLoan), "loan transferred")

	return newLoan, nil
}

// RemindOverdue writes a reminder entry for loans active since before the
// cutoff. A loan is reminded once; reruns skip loans that already carry a
// reminder entry.
func (m *LoanManager) RemindOverdue(ctx context.Context, cutoff time.Time) (int, error) {
	reminded := 0

	query := repo.NewQuery().
		Where(
			repo.IsNull(repo.ReturnedAtField),
			repo.Lt(repo.LoanedAtField, cutoff),
		).
		Order(repo.OrderField{Field: repo.LoanedAtField, Direction: repo.Asc})

	err := repo.ProcessInBatch(ctx, m.repo, query, loanScanBatchSize,
		func(batch []*model.KeyLoan) error {
			for _, loan := range batch {
				already, err := m.hasReminder(ctx, loan.ID)
				if err != nil {
					return err
				}

				if already {
					continue
				}

				err = m.activity.Record(ctx, m.repo, &model.KeyLogEntry{
					KeyLoanID: &loan.ID,
					Action:    ActionLoanReminder,
					Message:   "loan to " + loan.Contact + " active since " + loan.LoanedAt.Format(time.RFC3339),
				})
				if err != nil {
					return err
				}

				reminded++
			}

			return nil
		})
	if err != nil {
		return reminded, errs.Wrap(ErrListLoansDB, err)
	}

	return reminded, nil
}

func (m *LoanManager) hasReminder(ctx context.Context, loanID uuid.UUID) (bool, error) {
	entry := &model.KeyLogEntry{}

	_, err := m.repo.First(ctx, entry, *repo.NewQuery().Where(
		repo.Eq(repo.KeyLoanIDField, loanID),
		repo.Eq(repo.ActionField, ActionLoanReminder),
	))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}

		return false, errs.Wrap(ErrListLogEntriesDB, err)
	}

	return true, nil
}

func (m *LoanManager) loanQuery(filter LoanSearchFilter) *repo.Query {
	var conds []repo.Condition

	if filter.Active != nil {
		if *filter.Active {
			conds = append(conds, repo.IsNull(repo.ReturnedAtField))
		} else {
			conds = append(conds, repo.NotNull(repo.ReturnedAtField))
		}
	}

	if filter.Contact != "" {
		conds = append(conds, repo.Eq(repo.ContactField, filter.Contact))
	}

	if filter.LoanType != "" {
		conds = append(conds, repo.Eq(repo.LoanTypeField, filter.LoanType))
	}

	return repo.NewQuery().Where(conds...)
}

// listLoansHoldingKey filters by key membership. Membership lives in a
// serialized id list, so matching loans are collected in batches and the
// page window is applied here.
func (m *LoanManager) listLoansHoldingKey(
	ctx context.Context,
	keyID uuid.UUID,
	filter LoanSearchFilter,
	pagination repo.Pagination,
) ([]*model.KeyLoan, int, error) {
	var matches []*model.KeyLoan

	query := m.loanQuery(filter).
		Order(repo.OrderField{Field: repo.LoanedAtField, Direction: repo.Desc})

	err := repo.ProcessInBatch(ctx, m.repo, query, loanScanBatchSize,
		func(batch []*model.KeyLoan) error {
			for _, loan := range batch {
				ids, err := loan.KeyIDs()
				if err != nil {
					return err
				}

				if slices.Contains(ids, keyID) {
					matches = append(matches, loan)
				}
			}

			return nil
		})
	if err != nil {
		return nil, 0, errs.Wrap(ErrListLoansDB, err)
	}

	total := len(matches)

	start := min(pagination.Offset(), total)
	end := min(start+pagination.Limit, total)

	return matches[start:end], total, nil
}

func (m *LoanManager) recordLoanActivity(
	ctx context.Context,
	repository repo.Repo,
	loan *model.KeyLoan,
	keyIDs []uuid.UUID,
	action string,
	message string,
) error {
	for _, keyID := range keyIDs {
		err := m.activity.Record(ctx, repository, &model.KeyLogEntry{
			KeyID:     ptr.PointTo(keyID),
			KeyLoanID: &loan.ID,
			Action:    action,
			Message:   message,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// consultAdapters validates the borrower against the configured downstream
// services. A missing contact rejects the loan; tenant loans additionally
// require an active lease. Disabled adapters skip their check.
func (m *LoanManager) consultAdapters(ctx context.Context, loan *model.KeyLoan) error {
	if m.clients == nil {
		return nil
	}

	if contactsClient := m.clients.Contacts(); contactsClient != nil {
		_, err := contactsClient.GetContact(ctx, loan.Contact)
		if err != nil {
			if clients.IsNotFound(err) {
				return errs.Wrap(ErrLoanContactUnknown, err)
			}

			return errs.Wrap(ErrContactLookupFailed, err)
		}
	}

	if loan.LoanType != model.LoanTypeTenant {
		return nil
	}

	leasingClient := m.clients.Leasing()
	if leasingClient == nil {
		return nil
	}

	leases, err := leasingClient.GetLeasesByContact(ctx, loan.Contact)
	if err != nil {
		return errs.Wrap(ErrLeaseLookupFailed, err)
	}

	now := time.Now()
	for _, lease := range leases {
		if lease.Active(now) {
			return nil
		}
	}

	return ErrLoanNoActiveLease
}

// checkKeysLoanable verifies every key exists, is undisposed and is not
// held by an active loan.
func checkKeysLoanable(ctx context.Context, repository repo.Repo, keyIDs []uuid.UUID) error {
	var keys []*model.Key

	count, err := repository.List(ctx, model.Key{}, &keys,
		*repo.NewQuery().
			Where(repo.Eq(repo.IDField, keyIDs)).
			SetLimit(repo.MaxLimit))
	if err != nil {
		return errs.Wrap(ErrGetKeyDB, err)
	}

	if count != len(keyIDs) {
		return ErrLoanKeyNotFound
	}

	for _, key := range keys {
		if key.Disposed {
			return errs.Wrapf(ErrKeyDisposed, "key "+key.KeyName)
		}
	}

	loan, err := activeLoanHoldingKeys(ctx, repository, keyIDs)
	if err != nil {
		return err
	}

	if loan != nil {
		return ErrKeyAlreadyOnLoan
	}

	return nil
}

// activeLoanHoldingKeys returns the first active loan holding any of the
// given keys, or nil when the keys are free.
func activeLoanHoldingKeys(
	ctx context.Context,
	repository repo.Repo,
	keyIDs []uuid.UUID,
) (*model.KeyLoan, error) {
	wanted := make(map[uuid.UUID]struct{}, len(keyIDs))
	for _, id := range keyIDs {
		wanted[id] = struct{}{}
	}

	var found *model.KeyLoan

	query := repo.NewQuery().
		Where(repo.IsNull(repo.ReturnedAtField)).
		Order(repo.OrderField{Field: repo.LoanedAtField, Direction: repo.Asc})

	err := repo.ProcessInBatch(ctx, repository, query, loanScanBatchSize,
		func(batch []*model.KeyLoan) error {
			for _, loan := range batch {
				ids, err := loan.KeyIDs()
				if err != nil {
					return err
				}

				for _, id := range ids {
					if _, ok := wanted[id]; ok {
						found = loan
						return errStopScan
					}
				}
			}

			return nil
		})
	if err != nil {
		if errors.Is(err, errStopScan) {
			return found, nil
		}

		return nil, errs.Wrap(ErrListLoansDB, err)
	}

	return nil, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	result := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}

		result = append(result, id)
	}

	return result
}
