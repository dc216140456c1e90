package directory

import (
	"github.com/helpdesk-demo/ticket-service/internal/errs"
	"github.com/helpdesk-demo/ticket-service/internal/model"
)

type entry struct {
	user     model.User
	password string
}

// Directory is the fixed username → user table. There is no registration;
// the demo ships with exactly the accounts the original system had.
type Directory struct {
	byName map[string]entry
	byID   map[int64]model.User
}

// New returns the directory with the built-in demo accounts: admin/admin is
// the service team, user/password is a customer. Passwords are compared in
// plaintext here on purpose; hashing is out of scope for this demo.
func New() *Directory {
	d := &Directory{
		byName: make(map[string]entry),
		byID:   make(map[int64]model.User),
	}
	d.add(model.User{ID: 1, Username: "admin", Role: model.RoleServiceTeam}, "admin")
	d.add(model.User{ID: 2, Username: "user", Role: model.RoleCustomer}, "password")
	return d
}

func (d *Directory) add(u model.User, password string) {
	d.byName[u.Username] = entry{user: u, password: password}
	d.byID[u.ID] = u
}

// Resolve looks a user up by username. Exact and case-sensitive.
func (d *Directory) Resolve(username string) (model.User, error) {
	e, ok := d.byName[username]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return e.user, nil
}

// ResolveID looks a user up by id; the session middleware uses this so role
// is always read from the directory, never from a token.
func (d *Directory) ResolveID(id int64) (model.User, error) {
	u, ok := d.byID[id]
	if !ok {
		return model.User{}, errs.ErrUserNotFound
	}
	return u, nil
}

// Authenticate resolves the username and checks the password. Unknown user
// and wrong password fail identically.
func (d *Directory) Authenticate(username, password string) (model.User, error) {
	e, ok := d.byName[username]
	if !ok || e.password != password {
		return model.User{}, errs.ErrInvalidCredentials
	}
	return e.user, nil
}
