package errs

var MatchCount = matchCount
