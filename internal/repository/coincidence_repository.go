package repository

import "context"

// CoincidenceRepository is the ledger of directed likes between users.
type CoincidenceRepository interface {
	// RecordLike registers that liker liked target and reports whether this
	// attempt completed a mutual pair. The lookup is against the reverse
	// direction of the attempt (first_user_id = target, second_user_id =
	// liker), i.e. "did the target already like me?":
	//
	//   - reverse row exists with compared = true: the pair was reconciled
	//     earlier, nothing is written, returns false;
	//   - reverse row exists with compared = false: this is the
	//     reciprocating like, compared flips to true, returns true;
	//   - no reverse row: a new one-directional row
	//     (first = liker, second = target) is inserted, returns false.
	//
	// Exactly one write (insert or update) is committed per call, except in
	// the already-reconciled case which writes nothing.
	RecordLike(ctx context.Context, likerID, targetID int) (bool, error)

	// DeleteAll clears the ledger. Used only by reset/seed tooling.
	DeleteAll(ctx context.Context) error
}
