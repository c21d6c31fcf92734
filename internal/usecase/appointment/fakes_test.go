package appointment

import (
	"context"
	"sort"
	"sync"

	"github.com/BruksfildServices01/barber-connect/internal/audit"
	domain "github.com/BruksfildServices01/barber-connect/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-connect/internal/models"
	"github.com/BruksfildServices01/barber-connect/internal/notify"
)

type fakeRepo struct {
	mu           sync.Mutex
	users        map[uint]*models.User
	profiles     map[uint]*models.BarberProfile
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		users:        map[uint]*models.User{},
		profiles:     map[uint]*models.BarberProfile{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (f *fakeRepo) addUser(id uint, role models.Role) *models.User {
	u := &models.User{ID: id, Username: "u", Role: role}
	f.users[id] = u
	return u
}

func (f *fakeRepo) addProfile(id, userID uint, services ...models.Service) *models.BarberProfile {
	p := &models.BarberProfile{ID: id, UserID: userID, Services: services}
	f.profiles[id] = p
	return p
}

func (f *fakeRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[id], nil
}

func (f *fakeRepo) GetBarberProfile(_ context.Context, id uint) (*models.BarberProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profiles[id], nil
}

func (f *fakeRepo) GetBarberProfileByUser(_ context.Context, userID uint) (*models.BarberProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	cp := *ap
	f.appointments[ap.ID] = &cp
	return nil
}

func (f *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	cp := *ap
	if p, ok := f.profiles[ap.BarberID]; ok {
		cp.Barber = *p
	}
	return &cp, nil
}

func (f *fakeRepo) list(match func(*models.Appointment) bool) []models.Appointment {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if match(ap) {
			out = append(out, *ap)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeRepo) ListForCustomer(_ context.Context, customerID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(ap *models.Appointment) bool { return ap.CustomerID == customerID }), nil
}

func (f *fakeRepo) ListForBarber(_ context.Context, barberID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(ap *models.Appointment) bool { return ap.BarberID == barberID }), nil
}

func (f *fakeRepo) TransitionStatus(_ context.Context, id uint, from, to domain.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	if !ok || ap.Status != string(from) {
		return false, nil
	}
	ap.Status = string(to)
	return true, nil
}

func (f *fakeRepo) StatsForBarber(context.Context, uint, string) (domain.Stats, error) {
	return domain.Stats{}, nil
}

func (f *fakeRepo) status(id uint) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.appointments[id].Status
}

type sent struct {
	UserID uint
	Kind   notify.Kind
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (n *fakeNotifier) Notify(_ context.Context, userID uint, kind notify.Kind, _ map[string]any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sent{UserID: userID, Kind: kind})
}

func (n *fakeNotifier) all() []sent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sent(nil), n.sent...)
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

func (a *fakeAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.events))
	for _, ev := range a.events {
		out = append(out, ev.Action)
	}
	return out
}
