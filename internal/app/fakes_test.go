package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talenthub/internal/common"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
	"talenthub/internal/domain/notification"
	"talenthub/internal/domain/principal"
	"talenthub/internal/domain/profile"
	"talenthub/internal/realtime"
)

type fakePrincipalRepo struct {
	mu      sync.Mutex
	byID    map[common.UUID]*principal.Principal
	byEmail map[string]common.UUID
}

func newFakePrincipalRepo() *fakePrincipalRepo {
	return &fakePrincipalRepo{
		byID:    make(map[common.UUID]*principal.Principal),
		byEmail: make(map[string]common.UUID),
	}
}

func (r *fakePrincipalRepo) Create(ctx context.Context, email, passwordHash string) (*principal.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	p := &principal.Principal{
		ID:           common.NewUUID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	r.byID[p.ID] = p
	r.byEmail[email] = p.ID
	return clonePrincipal(p), nil
}

func (r *fakePrincipalRepo) GetByID(ctx context.Context, id common.UUID) (*principal.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "account not found", nil)
	}
	return clonePrincipal(p), nil
}

func (r *fakePrincipalRepo) GetByEmail(ctx context.Context, email string) (*principal.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "account not found", nil)
	}
	return clonePrincipal(r.byID[id]), nil
}

func (r *fakePrincipalRepo) AssignRole(ctx context.Context, id common.UUID, role principal.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byID[id]
	if p == nil {
		return common.NewError(common.CodeNotFound, "account not found", nil)
	}
	if p.Role != "" && p.Role != role {
		return common.NewError(common.CodeRoleConflict, "role is already assigned", nil)
	}
	p.Role = role
	return nil
}

func clonePrincipal(p *principal.Principal) *principal.Principal {
	copied := *p
	return &copied
}

type fakeCandidateRepo struct {
	mu       sync.Mutex
	byUserID map[common.UUID]*profile.CandidateProfile
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byUserID: make(map[common.UUID]*profile.CandidateProfile)}
}

func (r *fakeCandidateRepo) Create(ctx context.Context, p profile.CandidateProfile) (*profile.CandidateProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.byUserID[p.UserID]; existing != nil {
		copied := *existing
		return &copied, false, nil
	}
	p.ID = common.NewUUID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	stored := p
	r.byUserID[p.UserID] = &stored
	copied := stored
	return &copied, true, nil
}

func (r *fakeCandidateRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CandidateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUserID[userID]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "candidate profile not found", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, id common.UUID) (*profile.CandidateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byUserID {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "candidate profile not found", nil)
}

func (r *fakeCandidateRepo) Update(ctx context.Context, p profile.CandidateProfile) (*profile.CandidateProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byUserID[p.UserID]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "candidate profile not found", nil)
	}
	existing.FullName = p.FullName
	existing.Phone = p.Phone
	existing.Location = p.Location
	existing.About = p.About
	existing.UpdatedAt = time.Now().UTC()
	copied := *existing
	return &copied, nil
}

func (r *fakeCandidateRepo) SetResumeURL(ctx context.Context, userID common.UUID, resumeURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byUserID[userID]
	if existing == nil {
		return common.NewError(common.CodeNotFound, "candidate profile not found", nil)
	}
	existing.ResumeURL = resumeURL
	return nil
}

type fakeEmployerRepo struct {
	mu       sync.Mutex
	byUserID map[common.UUID]*profile.EmployerProfile
}

func newFakeEmployerRepo() *fakeEmployerRepo {
	return &fakeEmployerRepo{byUserID: make(map[common.UUID]*profile.EmployerProfile)}
}

func (r *fakeEmployerRepo) Create(ctx context.Context, p profile.EmployerProfile) (*profile.EmployerProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.byUserID[p.UserID]; existing != nil {
		copied := *existing
		return &copied, false, nil
	}
	p.ID = common.NewUUID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	stored := p
	r.byUserID[p.UserID] = &stored
	copied := stored
	return &copied, true, nil
}

func (r *fakeEmployerRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.EmployerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUserID[userID]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "employer profile not found", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeEmployerRepo) GetByID(ctx context.Context, id common.UUID) (*profile.EmployerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byUserID {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "employer profile not found", nil)
}

func (r *fakeEmployerRepo) Update(ctx context.Context, p profile.EmployerProfile) (*profile.EmployerProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing := r.byUserID[p.UserID]
	if existing == nil {
		return nil, common.NewError(common.CodeNotFound, "employer profile not found", nil)
	}
	existing.CompanyName = p.CompanyName
	existing.Description = p.Description
	existing.Location = p.Location
	existing.Industry = p.Industry
	existing.CompanySize = p.CompanySize
	existing.Website = p.Website
	existing.UpdatedAt = time.Now().UTC()
	copied := *existing
	return &copied, nil
}

type fakeRecruiterRepo struct {
	mu       sync.Mutex
	byUserID map[common.UUID]*profile.RecruiterProfile
}

func newFakeRecruiterRepo() *fakeRecruiterRepo {
	return &fakeRecruiterRepo{byUserID: make(map[common.UUID]*profile.RecruiterProfile)}
}

func (r *fakeRecruiterRepo) Create(ctx context.Context, p profile.RecruiterProfile) (*profile.RecruiterProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing := r.byUserID[p.UserID]; existing != nil {
		copied := *existing
		return &copied, false, nil
	}
	p.ID = common.NewUUID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	stored := p
	r.byUserID[p.UserID] = &stored
	copied := stored
	return &copied, true, nil
}

func (r *fakeRecruiterRepo) GetByUserID(ctx context.Context, userID common.UUID) (*profile.RecruiterProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.byUserID[userID]
	if p == nil {
		return nil, common.NewError(common.CodeNotFound, "recruiter profile not found", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeRecruiterRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]profile.RecruiterProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []profile.RecruiterProfile
	for _, p := range r.byUserID {
		if p.EmployerID == employerID {
			items = append(items, *p)
		}
	}
	return items, nil
}

type fakeJobRepo struct {
	mu   sync.Mutex
	byID map[common.UUID]*job.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{byID: make(map[common.UUID]*job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j.ID = common.NewUUID()
	j.CreatedAt = time.Now().UTC()
	j.UpdatedAt = j.CreatedAt
	stored := j
	r.byID[j.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeJobRepo) GetByID(ctx context.Context, id common.UUID) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.byID[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	copied := *j
	return &copied, nil
}

func (r *fakeJobRepo) ListActive(ctx context.Context, filter job.SearchFilter) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.byID {
		if j.Status != job.StatusActive {
			continue
		}
		if filter.Category != "" && j.Category != filter.Category {
			continue
		}
		if filter.Location != "" && j.Location != filter.Location {
			continue
		}
		items = append(items, *j)
	}
	return items, nil
}

func (r *fakeJobRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []job.Job
	for _, j := range r.byID {
		if j.EmployerID == employerID {
			items = append(items, *j)
		}
	}
	return items, nil
}

// UpdateStatus mirrors the store's guarded update: the transition
// commits only when the current status is in allowedFrom, and a refused
// update is classified off the committed state.
func (r *fakeJobRepo) UpdateStatus(ctx context.Context, id common.UUID, next job.Status, allowedFrom []job.Status) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j := r.byID[id]
	if j == nil {
		return nil, common.NewError(common.CodeNotFound, "job not found", nil)
	}
	for _, from := range allowedFrom {
		if j.Status == from {
			j.Status = next
			j.UpdatedAt = time.Now().UTC()
			copied := *j
			return &copied, nil
		}
	}
	if j.Status.Terminal() {
		return nil, common.NewError(common.CodeTerminalState, "job status is terminal", nil)
	}
	return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("transition to %s not allowed from %s", next, j.Status), nil)
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	jobs  *fakeJobRepo
	byID  map[common.UUID]*application.Application
	byKey map[string]common.UUID
}

func newFakeApplicationRepo(jobs *fakeJobRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		jobs:  jobs,
		byID:  make(map[common.UUID]*application.Application),
		byKey: make(map[string]common.UUID),
	}
}

func applicationKey(jobID, candidateID common.UUID) string {
	return jobID.String() + "/" + candidateID.String()
}

func (r *fakeApplicationRepo) CreateIfAbsent(ctx context.Context, app application.Application) (*application.Application, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := applicationKey(app.JobID, app.CandidateID)
	if existingID, ok := r.byKey[key]; ok {
		copied := *r.byID[existingID]
		return &copied, false, nil
	}
	app.ID = common.NewUUID()
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	stored := app
	r.byID[app.ID] = &stored
	r.byKey[key] = app.ID
	copied := stored
	return &copied, true, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByCandidate(ctx context.Context, candidateID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.CandidateID == candidateID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByJob(ctx context.Context, jobID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		if app.JobID == jobID {
			items = append(items, *app)
		}
	}
	return items, nil
}

// ListByEmployer joins through the jobs table the way the store does.
func (r *fakeApplicationRepo) ListByEmployer(ctx context.Context, employerID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.byID {
		j, err := r.jobs.GetByID(ctx, app.JobID)
		if err != nil {
			continue
		}
		if j.EmployerID == employerID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, next application.Status, notes string, allowedFrom []application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	for _, from := range allowedFrom {
		if app.Status == from {
			app.Status = next
			if notes != "" {
				app.Notes = notes
			}
			app.UpdatedAt = time.Now().UTC()
			copied := *app
			return &copied, nil
		}
	}
	if app.Status.Terminal() {
		return nil, common.NewError(common.CodeTerminalState, "application status is terminal", nil)
	}
	return nil, common.NewError(common.CodeInvalidTransition, fmt.Sprintf("transition to %s not allowed from %s", next, app.Status), nil)
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	items   []notification.Notification
	failErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n notification.Notification) (*notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return nil, r.failErr
	}
	n.ID = common.NewUUID()
	n.CreatedAt = time.Now().UTC()
	r.items = append(r.items, n)
	copied := n
	return &copied, nil
}

func (r *fakeNotificationRepo) ListByRecipient(ctx context.Context, recipientID common.UUID, limit, offset int) ([]notification.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []notification.Notification
	for _, n := range r.items {
		if n.RecipientID == recipientID {
			items = append(items, n)
		}
	}
	return items, nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, recipientID common.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, recipientID common.UUID, ids []common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := make(map[common.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for i := range r.items {
		if r.items[i].RecipientID != recipientID {
			continue
		}
		if _, ok := wanted[r.items[i].ID]; ok {
			r.items[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeFeed struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (f *fakeFeed) Publish(ctx context.Context, event realtime.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}
