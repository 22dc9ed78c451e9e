package model

// Card identifies a graded card presented at the buying desk. None of
// these fields influence the evaluation outcome; they are carried through
// for output messages and caller bookkeeping.
type Card struct {
	ID         string `json:"id"`
	PlayerName string `json:"player_name"`
	SetName    string `json:"set_name"`
	Year       string `json:"year"`
	CardNumber string `json:"card_number"`
	Grade      string `json:"grade"`
	CertNumber string `json:"cert_number"`
}

// Label returns a short display name for reports.
func (c *Card) Label() string {
	if c.PlayerName == "" {
		return c.CertNumber
	}
	s := c.Year + " " + c.SetName + " " + c.PlayerName
	if c.CardNumber != "" {
		s += " #" + c.CardNumber
	}
	if c.Grade != "" {
		s += " " + c.Grade
	}
	return s
}
