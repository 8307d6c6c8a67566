package fights

import "time"

// Result de una pelea.
type Result string

const (
	ResultWon  Result = "won"
	ResultLost Result = "lost"
)

func ValidResult(r Result) bool {
	return r == ResultWon || r == ResultLost
}

// Rating es la calificación del desempeño del gallo, gane o pierda.
type Rating string

const (
	RatingExtraordinary Rating = "extraordinary"
	RatingGood          Rating = "good"
	RatingRegular       Rating = "regular"
	RatingBad           Rating = "bad"
)

func ValidRating(r Rating) bool {
	switch r {
	case RatingExtraordinary, RatingGood, RatingRegular, RatingBad:
		return true
	}
	return false
}

type Fight struct {
	ID          string
	OwnerUserID string
	BirdID      string

	Date   time.Time
	Venue  string
	Result Result
	Rating Rating
	Notes  string

	CreatedAt time.Time
	UpdatedAt time.Time
}
