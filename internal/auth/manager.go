package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/samber/oops"
	"skillbridge/internal/constants"
)

// Manager persists the Record of the current browser in the session store.
// Handlers receive it explicitly instead of reaching for shared state.
type Manager struct {
	store *session.Store
	now   func() time.Time
}

func NewManager(store *session.Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Save starts a fresh session holding r, discarding whatever the previous
// session carried.
func (m *Manager) Save(c *fiber.Ctx, r Record) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}
	if err := sess.Reset(); err != nil {
		return oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}

	value, err := r.encode()
	if err != nil {
		return oops.Code("SESSION_ENCODE").Wrap(err)
	}
	sess.Set(constants.SessionRecordKey, value)

	if err := sess.Save(); err != nil {
		return oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}
	return nil
}

// Load returns the Record of the current session. Records whose token has
// expired are destroyed and reported as absent.
func (m *Manager) Load(c *fiber.Ctx) (Record, bool, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return Record{}, false, oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}

	value, ok := sess.Get(constants.SessionRecordKey).(string)
	if !ok || value == "" {
		return Record{}, false, nil
	}

	r, err := decodeRecord(value)
	if err != nil {
		fiberlog.Error("dropping undecodable session record: ", err)
		return Record{}, false, m.destroy(sess)
	}

	if r.Expired(m.now()) {
		fiberlog.Debug("session token expired for ", r.Email)
		return Record{}, false, m.destroy(sess)
	}

	return r, true, nil
}

// Destroy removes the Record and the session behind it.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}
	return m.destroy(sess)
}

func (m *Manager) destroy(sess *session.Session) error {
	if err := sess.Destroy(); err != nil {
		return oops.Code("SESSION_UNAVAILABLE").Wrap(err)
	}
	return nil
}

// Current returns the Record that the session middleware attached to c.
func Current(c *fiber.Ctx) (Record, bool) {
	r, ok := c.Locals(constants.SessionRecordKey).(Record)
	return r, ok
}
