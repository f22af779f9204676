package domain

// Coincidence is a directed "like" from FirstUserID towards SecondUserID.
// The direction records who liked first; when the reverse like arrives the
// row is promoted to a mutual match by flipping Compared to true. Compared
// flips at most once, after that the pair is considered reconciled.
type Coincidence struct {
	ID           int  `json:"id" db:"id"`
	FirstUserID  int  `json:"first_user_id" db:"first_user_id"`
	SecondUserID int  `json:"second_user_id" db:"second_user_id"`
	Compared     bool `json:"compared" db:"compared"`
}
