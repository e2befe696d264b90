package sqlstore

// InsertVote exposes the raw vote insert so tests can hit the unique index
// without the existence check in CastVote in front of it.
var InsertVote = (*Store).insertVote
