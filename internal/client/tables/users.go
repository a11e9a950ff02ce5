package tables

import "github.com/firflight/firflight/internal/client/models"

// UserTable stores the signed-in user.
type UserTable struct{}

// Users is the table of the signed-in user.
var Users Table[models.User] = UserTable{}

func (UserTable) Name() string { return "users" }

func (UserTable) CreateTable() string {
	return `CREATE TABLE IF NOT EXISTS users (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL,
	name       TEXT,
	avatar_url TEXT,
	created_at TEXT NOT NULL
)`
}

func (UserTable) DeleteTable() string { return `DROP TABLE IF EXISTS users` }

// ToRow stores an empty name or avatar URL as NULL.
func (UserTable) ToRow(u models.User) Row {
	return Row{
		"id":         u.ID,
		"email":      u.Email,
		"name":       OptText(u.Name),
		"avatar_url": OptText(u.AvatarURL),
		"created_at": Stamp(u.CreatedAt),
	}
}

// FromRow requires id, email and created_at.
func (UserTable) FromRow(r Row) (models.User, error) {
	rr := rowReader{row: r}
	u := models.User{
		ID:        rr.str("id"),
		Email:     rr.str("email"),
		Name:      rr.optStr("name"),
		AvatarURL: rr.optStr("avatar_url"),
		CreatedAt: rr.time("created_at"),
	}
	if rr.err != nil {
		return models.User{}, rr.err
	}
	return u, nil
}
