package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GymDesk/gymdesk/auth"
	"github.com/GymDesk/gymdesk/models/account"
	"github.com/GymDesk/gymdesk/models/bill"
	"github.com/GymDesk/gymdesk/models/member"
	"github.com/GymDesk/gymdesk/models/notification"
	"github.com/GymDesk/gymdesk/models/payment"
)

// fakeAccounts is an in-memory account.Repository
type fakeAccounts struct {
	accounts        map[string]*account.Account // keyed by id
	passwordUpdates int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]*account.Account{}}
}

func (f *fakeAccounts) Create(id, username, email, passwordHash, firstName, lastName string, role account.Role, active bool) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email || a.Username == username {
			return nil, account.ErrIdentityExists
		}
	}
	a := &account.Account{
		ID: id, Username: username, Email: email, Password: passwordHash,
		FirstName: firstName, LastName: lastName, Role: role, IsActive: active,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	f.accounts[id] = a
	return a, nil
}

func (f *fakeAccounts) FindByEmail(email string) (*account.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (f *fakeAccounts) FindByID(id string) (*account.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, account.ErrAccountNotFound
}

func (f *fakeAccounts) IdentityExists(email, username string) (bool, error) {
	for _, a := range f.accounts {
		if a.Email == email || a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) UpdateProfile(id string, p account.Profile) error {
	a, ok := f.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.FirstName, a.LastName = p.FirstName, p.LastName
	a.Phone, a.Address, a.City, a.State, a.PostalCode = p.Phone, p.Address, p.City, p.State, p.PostalCode
	return nil
}

func (f *fakeAccounts) UpdatePassword(id, passwordHash string) error {
	a, ok := f.accounts[id]
	if !ok {
		return account.ErrAccountNotFound
	}
	a.Password = passwordHash
	f.passwordUpdates++
	return nil
}

// fakeMembers is an in-memory member.Repository
type fakeMembers struct {
	members map[string]*member.Member // keyed by id
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{members: map[string]*member.Member{}}
}

func (f *fakeMembers) Create(id, userID string) error {
	f.members[id] = &member.Member{ID: id, UserID: userID, MembershipStatus: "active", IsActive: true}
	return nil
}

func (f *fakeMembers) CreateWithUser(memberID string, u member.NewUserDetails) error {
	f.members[memberID] = &member.Member{ID: memberID, UserID: u.UserID, MembershipStatus: "active", IsActive: true}
	return nil
}

func (f *fakeMembers) FindByID(id string) (*member.Member, error) {
	if m, ok := f.members[id]; ok {
		return m, nil
	}
	return nil, member.ErrMemberNotFound
}

func (f *fakeMembers) FindByUserID(userID string) (*member.Member, error) {
	for _, m := range f.members {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, member.ErrMemberNotFound
}

func (f *fakeMembers) List(query string, page, limit int) ([]*member.Member, int, error) {
	ms := []*member.Member{}
	for _, m := range f.members {
		ms = append(ms, m)
	}
	return ms, len(ms), nil
}

func (f *fakeMembers) Update(id string, d member.UpdateDetails) error {
	m, ok := f.members[id]
	if !ok {
		return member.ErrMemberNotFound
	}
	if d.MembershipStatus != "" {
		m.MembershipStatus = d.MembershipStatus
	}
	m.EmergencyContact, m.EmergencyPhone, m.MedicalConditions = d.EmergencyContact, d.EmergencyPhone, d.MedicalConditions
	return nil
}

func (f *fakeMembers) Delete(id string) error {
	if _, ok := f.members[id]; !ok {
		return member.ErrMemberNotFound
	}
	delete(f.members, id)
	return nil
}

func (f *fakeMembers) Exists(id string) (bool, error) {
	_, ok := f.members[id]
	return ok, nil
}

func (f *fakeMembers) GetStats() (*member.Stats, error) {
	active := 0
	for _, m := range f.members {
		if m.MembershipStatus == "active" {
			active++
		}
	}
	return &member.Stats{Total: len(f.members), Active: active}, nil
}

// fakeBills is an in-memory bill.Repository
type fakeBills struct {
	bills []*bill.Bill
}

func (f *fakeBills) Create(b *bill.Bill) error {
	f.bills = append(f.bills, b)
	return nil
}

func (f *fakeBills) List(page, limit int) ([]*bill.Bill, int, error) {
	return f.bills, len(f.bills), nil
}

func (f *fakeBills) ListByMember(memberID string, page, limit int) ([]*bill.Bill, int, error) {
	out := []*bill.Bill{}
	for _, b := range f.bills {
		if b.MemberID == memberID {
			out = append(out, b)
		}
	}
	return out, len(out), nil
}

func (f *fakeBills) ListAllDetailed() ([]*bill.Bill, error) {
	return f.bills, nil
}

func (f *fakeBills) FindByID(id string) (*bill.Bill, error) {
	for _, b := range f.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bill.ErrBillNotFound
}

func (f *fakeBills) UpdateStatus(id, status string) error {
	b, err := f.FindByID(id)
	if err != nil {
		return err
	}
	b.Status = status
	return nil
}

func (f *fakeBills) Delete(id string) error {
	for i, b := range f.bills {
		if b.ID == id {
			f.bills = append(f.bills[:i], f.bills[i+1:]...)
			return nil
		}
	}
	return bill.ErrBillNotFound
}

func (f *fakeBills) GetStats() (*bill.Stats, error) {
	s := &bill.Stats{Total: len(f.bills)}
	for _, b := range f.bills {
		s.Revenue += b.Total
	}
	return s, nil
}

// fakePayments is an in-memory payment.Repository
type fakePayments struct {
	payments []*payment.Payment
}

func (f *fakePayments) Create(p *payment.Payment) error {
	p.Status = "completed"
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakePayments) List(page, limit int) ([]*payment.Payment, int, error) {
	return f.payments, len(f.payments), nil
}

func (f *fakePayments) ListByMember(memberID string, page, limit int) ([]*payment.Payment, int, error) {
	out := []*payment.Payment{}
	for _, p := range f.payments {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, len(out), nil
}

func (f *fakePayments) FindByID(id string) (*payment.Payment, error) {
	for _, p := range f.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, payment.ErrPaymentNotFound
}

func (f *fakePayments) GetStats() (*payment.Stats, error) {
	s := &payment.Stats{Total: len(f.payments)}
	for _, p := range f.payments {
		s.TotalAmount += p.Amount
	}
	return s, nil
}

// fakeNotifications is an in-memory notification.Repository
type fakeNotifications struct {
	notifications []*notification.Notification
}

func (f *fakeNotifications) Create(n *notification.Notification) error {
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotifications) ListByUser(userID string) ([]*notification.Notification, error) {
	out := []*notification.Notification{}
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) UnreadCount(userID string) (int, error) {
	count := 0
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotifications) MarkRead(id string) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			now := time.Now()
			n.SentDate = &now
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func (f *fakeNotifications) SeedMonthlyReminders(title, message string) (int, error) {
	return 0, nil
}

// setupAuth points the controllers at fresh fakes and a test token
// service, and returns them for assertions.
func setupAuth(t *testing.T) (*fakeAccounts, *fakeMembers) {
	t.Helper()

	accounts := newFakeAccounts()
	members := newFakeMembers()
	accountRepo = accounts
	memberRepo = members
	Configure(auth.NewTokenService("test-secret", time.Hour), "admin@example.com", "Admin123")

	t.Cleanup(func() {
		accountRepo = &account.Postgres{}
		memberRepo = &member.Postgres{}
	})

	return accounts, members
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	return httptest.NewRequest(method, path, &buf)
}
