package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

// In-memory repository fakes. They reproduce the guarded-update semantics
// of the SQL layer so the usecase tests exercise the same race outcomes.

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeTxManager struct{}

func (fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memConsultationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Consultation
}

func newMemConsultationRepo() *memConsultationRepo {
	return &memConsultationRepo{items: map[uuid.UUID]*entity.Consultation{}}
}

func (r *memConsultationRepo) Create(ctx context.Context, c *entity.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return nil
}

func (r *memConsultationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memConsultationRepo) ExistsActiveForCase(ctx context.Context, caseID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.DiseaseCaseID == caseID && c.IsActiveRequest() {
			return true, nil
		}
	}
	return false, nil
}

func (r *memConsultationRepo) FindOpen(ctx context.Context) ([]entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Consultation
	for _, c := range r.items {
		if c.AcceptsOffers() {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memConsultationRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Consultation
	for _, c := range r.items {
		if c.PatientID == patientID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memConsultationRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Consultation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Consultation
	for _, c := range r.items {
		if c.DoctorID != nil && *c.DoctorID == doctorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memConsultationRepo) Save(ctx context.Context, c *entity.Consultation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	return nil
}

func (r *memConsultationRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from []entity.ConsultationStatus, to entity.ConsultationStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return 0, nil
	}
	for _, s := range from {
		if c.Status == s {
			c.Status = to
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memConsultationRepo) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.Status != entity.ConsultationStatusOfferSelected || c.IsPaid {
		return 0, nil
	}
	c.IsPaid = true
	c.Status = entity.ConsultationStatusInChat
	return 1, nil
}

func (r *memConsultationRepo) CountClosedByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.items {
		if c.DoctorID != nil && *c.DoctorID == doctorID && c.Status == entity.ConsultationStatusClosed {
			n++
		}
	}
	return n, nil
}

type memOfferRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entity.Offer
	createErr error
}

func newMemOfferRepo() *memOfferRepo {
	return &memOfferRepo{items: map[uuid.UUID]*entity.Offer{}}
}

func (r *memOfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.items[o.ID] = o
	return nil
}

func (r *memOfferRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memOfferRepo) FindActiveByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Offer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Offer
	for _, o := range r.items {
		if o.ConsultationID == consultationID && o.Status == entity.OfferStatusActive {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	return out, nil
}

func (r *memOfferRepo) HasActiveOffer(ctx context.Context, consultationID, doctorID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.ConsultationID == consultationID && o.DoctorID == doctorID && o.Status == entity.OfferStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *memOfferRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OfferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.items[id]; ok {
		o.Status = status
	}
	return nil
}

func (r *memOfferRepo) RejectSiblings(ctx context.Context, consultationID, keepOfferID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.items {
		if o.ConsultationID == consultationID && o.ID != keepOfferID {
			o.Status = entity.OfferStatusRejected
		}
	}
	return nil
}

type memCaseRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.DiseaseCase
}

func newMemCaseRepo() *memCaseRepo {
	return &memCaseRepo{items: map[uuid.UUID]*entity.DiseaseCase{}}
}

func (r *memCaseRepo) Create(ctx context.Context, c *entity.DiseaseCase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.items[c.ID] = c
	return nil
}

func (r *memCaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.DiseaseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memCaseRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.DiseaseCase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.DiseaseCase
	for _, c := range r.items {
		if c.PatientID == patientID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCaseRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.items[id]; ok {
		c.Status = status
	}
	return nil
}

type memMessageRepo struct {
	mu    sync.Mutex
	items []*entity.Message
}

func newMemMessageRepo() *memMessageRepo { return &memMessageRepo{} }

func (r *memMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.items = append(r.items, m)
	return nil
}

func (r *memMessageRepo) FindByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Message
	for _, m := range r.items {
		if m.ConsultationID == consultationID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *memMessageRepo) MarkReadForReceiver(ctx context.Context, consultationID, readerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ConsultationID == consultationID && m.SenderID != readerID {
			m.IsRead = true
		}
	}
	return nil
}

type memPaymentRepo struct {
	mu        sync.Mutex
	items     []*entity.Payment
	createErr error
}

func newMemPaymentRepo() *memPaymentRepo { return &memPaymentRepo{} }

func (r *memPaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.items = append(r.items, p)
	return nil
}

func (r *memPaymentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Payment
	for _, p := range r.items {
		if p.PatientID == patientID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memReviewRepo struct {
	mu        sync.Mutex
	items     []*entity.Review
	createErr error
}

func newMemReviewRepo() *memReviewRepo { return &memReviewRepo{} }

func (r *memReviewRepo) Create(ctx context.Context, rv *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	r.items = append(r.items, rv)
	return nil
}

func (r *memReviewRepo) ExistsForConsultation(ctx context.Context, consultationID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rv := range r.items {
		if rv.ConsultationID == consultationID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReviewRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Review
	for _, rv := range r.items {
		if rv.DoctorID == doctorID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Review
	for _, rv := range r.items {
		if rv.PatientID == patientID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (r *memReviewRepo) AggregateByDoctor(ctx context.Context, doctorID uuid.UUID) (int, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total, sum := 0, 0
	for _, rv := range r.items {
		if rv.DoctorID == doctorID {
			total++
			sum += rv.Rating
		}
	}
	if total == 0 {
		return 0, 0, nil
	}
	return total, float64(sum) / float64(total), nil
}

type memUserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{items: map[uuid.UUID]*entity.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.items[u.ID] = u
	return nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindUserIDsByRole(ctx context.Context, roleID int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []uuid.UUID
	for _, u := range r.items {
		if u.RoleID == roleID {
			out = append(out, u.ID)
		}
	}
	return out, nil
}

type memDoctorRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.DoctorProfile
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{items: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (r *memDoctorRepo) Create(ctx context.Context, p *entity.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.UserID] = p
	return nil
}

func (r *memDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[userID], nil
}

func (r *memDoctorRepo) FindApproved(ctx context.Context) ([]entity.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.DoctorProfile
	for _, p := range r.items {
		if p.IsApproved {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memDoctorRepo) SetApproved(ctx context.Context, userID uuid.UUID, approved bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[userID]
	if !ok {
		return 0, nil
	}
	p.IsApproved = approved
	return 1, nil
}

func (r *memDoctorRepo) UpdateAggregates(ctx context.Context, userID uuid.UUID, totalReviews int, averageRating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.items[userID]; ok {
		p.TotalReviews = totalReviews
		p.AverageRating = averageRating
	}
	return nil
}

type memNotificationRepo struct {
	mu    sync.Mutex
	items []*entity.Notification
}

func newMemNotificationRepo() *memNotificationRepo { return &memNotificationRepo{} }

func (r *memNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	r.items = append(r.items, n)
	return nil
}

func (r *memNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, item := range r.items {
		if item.UserID == userID && !item.IsRead {
			n++
		}
	}
	return n, nil
}

// recordNotifier captures intents synchronously instead of queueing them.
type recordNotifier struct {
	mu      sync.Mutex
	intents []service.NotificationIntent
}

func (n *recordNotifier) Notify(intent service.NotificationIntent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.intents = append(n.intents, intent)
}

func (n *recordNotifier) sentTo(userID uuid.UUID, typ entity.NotificationType) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, i := range n.intents {
		if i.UserID == userID && i.Type == typ {
			return true
		}
	}
	return false
}

// recordBroadcaster captures realtime events per consultation group.
type recordBroadcaster struct {
	mu     sync.Mutex
	events map[uuid.UUID][]interface{}
}

func newRecordBroadcaster() *recordBroadcaster {
	return &recordBroadcaster{events: map[uuid.UUID][]interface{}{}}
}

func (b *recordBroadcaster) BroadcastMessage(consultationID uuid.UUID, event interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[consultationID] = append(b.events[consultationID], event)
}

// memStore keeps saved assets in memory keyed by the returned public path.
type memStore struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{saved: map[string][]byte{}}
}

func (s *memStore) Save(ctx context.Context, category, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	path := "/uploads/" + category + "/" + filename
	s.mu.Lock()
	s.saved[path] = data
	s.mu.Unlock()
	return path, nil
}

type stubPredictor struct {
	prediction *service.Prediction
	err        error
}

func (p *stubPredictor) Predict(ctx context.Context, filename string, file io.Reader) (*service.Prediction, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.prediction, nil
}

// uniqueViolation mimics what the postgres driver returns when an insert
// hits a unique index.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}
