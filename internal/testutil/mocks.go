package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dafibh/drivelog/drivelog-backend/internal/domain"
	"github.com/dafibh/drivelog/drivelog-backend/internal/util"
	"github.com/dafibh/drivelog/drivelog-backend/internal/websocket"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// Create creates a new user
func (m *MockUserRepository) Create(user *domain.User) (*domain.User, error) {
	user.ID = uuid.New()
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// Update updates an existing user
func (m *MockUserRepository) Update(user *domain.User) (*domain.User, error) {
	if _, ok := m.ByID[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateName updates only the user's name by Auth0 ID
func (m *MockUserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	user, ok := m.Users[auth0ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	return user, nil
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(auth0ID, email, name, pictureURL)
	}
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces    map[int32]*domain.Workspace
	ByUserID      map[uuid.UUID]*domain.Workspace
	ByUserAuth0ID map[string]*domain.Workspace
	NextID        int32
	GetByUserIDFn func(userID uuid.UUID) (*domain.Workspace, error)
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces:    make(map[int32]*domain.Workspace),
		ByUserID:      make(map[uuid.UUID]*domain.Workspace),
		ByUserAuth0ID: make(map[string]*domain.Workspace),
		NextID:        1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserID retrieves a workspace by user ID
func (m *MockWorkspaceRepository) GetByUserID(userID uuid.UUID) (*domain.Workspace, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(userID)
	}
	if ws, ok := m.ByUserID[userID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByUserAuth0ID retrieves a workspace by user's Auth0 ID
func (m *MockWorkspaceRepository) GetByUserAuth0ID(auth0ID string) (*domain.Workspace, error) {
	if ws, ok := m.ByUserAuth0ID[auth0ID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.NextID
	m.NextID++
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	return workspace, nil
}

// Update updates an existing workspace
func (m *MockWorkspaceRepository) Update(workspace *domain.Workspace) (*domain.Workspace, error) {
	if _, ok := m.Workspaces[workspace.ID]; !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	return workspace, nil
}

// Delete deletes a workspace by ID
func (m *MockWorkspaceRepository) Delete(id int32) error {
	ws, ok := m.Workspaces[id]
	if !ok {
		return nil
	}
	delete(m.Workspaces, id)
	delete(m.ByUserID, ws.UserID)
	return nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace, auth0ID string) {
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	if auth0ID != "" {
		m.ByUserAuth0ID[auth0ID] = workspace
	}
}

// MockDailyRecordRepository is an in-memory domain.DailyRecordRepository
type MockDailyRecordRepository struct {
	Records     map[int32]*domain.DailyRecord
	NextID      int32
	NextChildID int32
	GetAllErr   error
	UpsertErr   error
	GetAllCalls int
	LastFilters *domain.DailyRecordFilters
}

// NewMockDailyRecordRepository creates a new MockDailyRecordRepository
func NewMockDailyRecordRepository() *MockDailyRecordRepository {
	return &MockDailyRecordRepository{
		Records:     make(map[int32]*domain.DailyRecord),
		NextID:      1,
		NextChildID: 1,
	}
}

// AddRecord stores a record as-is (helper for tests)
func (m *MockDailyRecordRepository) AddRecord(record *domain.DailyRecord) {
	if record.ID == 0 {
		record.ID = m.NextID
		m.NextID++
	}
	m.Records[record.ID] = record
}

// GetAll returns the workspace records in date order
func (m *MockDailyRecordRepository) GetAll(workspaceID int32, filters *domain.DailyRecordFilters) ([]*domain.DailyRecord, error) {
	m.GetAllCalls++
	m.LastFilters = filters
	if m.GetAllErr != nil {
		return nil, m.GetAllErr
	}

	var result []*domain.DailyRecord
	for _, r := range m.Records {
		if r.WorkspaceID != workspaceID {
			continue
		}
		if filters != nil {
			if filters.StartDate != nil && r.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && r.Date.After(*filters.EndDate) {
				continue
			}
		}
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

// GetByID retrieves a record by ID
func (m *MockDailyRecordRepository) GetByID(workspaceID int32, id int32) (*domain.DailyRecord, error) {
	if r, ok := m.Records[id]; ok && r.WorkspaceID == workspaceID {
		return r, nil
	}
	return nil, domain.ErrDailyRecordNotFound
}

// GetByDate retrieves the record of a calendar date
func (m *MockDailyRecordRepository) GetByDate(workspaceID int32, date time.Time) (*domain.DailyRecord, error) {
	for _, r := range m.Records {
		if r.WorkspaceID == workspaceID && util.SameDay(r.Date, date) {
			return r, nil
		}
	}
	return nil, domain.ErrDailyRecordNotFound
}

// UpsertAccumulate mirrors the accumulate-on-conflict insert
func (m *MockDailyRecordRepository) UpsertAccumulate(workspaceID int32, sub *domain.EarningsSubmission) (*domain.DailyRecord, bool, error) {
	if m.UpsertErr != nil {
		return nil, false, m.UpsertErr
	}

	record, err := m.GetByDate(workspaceID, sub.Date)
	created := errors.Is(err, domain.ErrDailyRecordNotFound)
	if created {
		record = &domain.DailyRecord{
			WorkspaceID: workspaceID,
			Date:        sub.Date,
			CreatedAt:   time.Now(),
		}
		m.AddRecord(record)
	}

	record.MinutesWorked += sub.MinutesWorked
	record.TripsUber += sub.TripsUber
	record.KmUber = record.KmUber.Add(sub.KmUber)
	record.EarningsUber = record.EarningsUber.Add(sub.EarningsUber)
	record.Trips99 += sub.Trips99
	record.Km99 = record.Km99.Add(sub.Km99)
	record.Earnings99 = record.Earnings99.Add(sub.Earnings99)
	if sub.FuelPrice.IsPositive() {
		record.FuelPrice = sub.FuelPrice
	}
	if sub.KmPerLiter.IsPositive() {
		record.KmPerLiter = sub.KmPerLiter
	}
	record.UpdatedAt = time.Now()

	for _, e := range sub.Expenses {
		_, _ = m.AddExpense(workspaceID, record.ID, e)
	}
	return record, created, nil
}

// Update overwrites a record, rejecting a date taken by another record
func (m *MockDailyRecordRepository) Update(record *domain.DailyRecord) (*domain.DailyRecord, error) {
	existing, err := m.GetByID(record.WorkspaceID, record.ID)
	if err != nil {
		return nil, err
	}
	if other, err := m.GetByDate(record.WorkspaceID, record.Date); err == nil && other.ID != record.ID {
		return nil, domain.ErrAlreadyExists
	}
	record.Expenses = existing.Expenses
	record.ExtraEarnings = existing.ExtraEarnings
	record.CreatedAt = existing.CreatedAt
	record.UpdatedAt = time.Now()
	m.Records[record.ID] = record
	return record, nil
}

// Delete removes a record and its children
func (m *MockDailyRecordRepository) Delete(workspaceID int32, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	delete(m.Records, id)
	return nil
}

// AddExpense appends an expense to a record
func (m *MockDailyRecordRepository) AddExpense(workspaceID int32, recordID int32, expense *domain.Expense) (*domain.Expense, error) {
	record, err := m.GetByID(workspaceID, recordID)
	if err != nil {
		return nil, err
	}
	created := *expense
	created.ID = m.NextChildID
	created.RecordID = recordID
	created.CreatedAt = time.Now()
	m.NextChildID++
	record.Expenses = append(record.Expenses, &created)
	return &created, nil
}

// DeleteExpense removes an expense from a record
func (m *MockDailyRecordRepository) DeleteExpense(workspaceID int32, recordID int32, expenseID int32) error {
	record, err := m.GetByID(workspaceID, recordID)
	if err != nil {
		return domain.ErrExpenseNotFound
	}
	for i, e := range record.Expenses {
		if e.ID == expenseID {
			record.Expenses = append(record.Expenses[:i], record.Expenses[i+1:]...)
			return nil
		}
	}
	return domain.ErrExpenseNotFound
}

// AddExtraEarning appends an extra earning, defaulting its date to the record's
func (m *MockDailyRecordRepository) AddExtraEarning(workspaceID int32, recordID int32, earning *domain.ExtraEarning) (*domain.ExtraEarning, error) {
	record, err := m.GetByID(workspaceID, recordID)
	if err != nil {
		return nil, err
	}
	created := *earning
	created.ID = m.NextChildID
	created.RecordID = recordID
	created.CreatedAt = time.Now()
	if created.Date.IsZero() {
		created.Date = record.Date
	}
	m.NextChildID++
	record.ExtraEarnings = append(record.ExtraEarnings, &created)
	return &created, nil
}

// DeleteExtraEarning removes an extra earning from a record
func (m *MockDailyRecordRepository) DeleteExtraEarning(workspaceID int32, recordID int32, earningID int32) error {
	record, err := m.GetByID(workspaceID, recordID)
	if err != nil {
		return domain.ErrExtraEarningNotFound
	}
	for i, e := range record.ExtraEarnings {
		if e.ID == earningID {
			record.ExtraEarnings = append(record.ExtraEarnings[:i], record.ExtraEarnings[i+1:]...)
			return nil
		}
	}
	return domain.ErrExtraEarningNotFound
}

// MockCarConfigRepository is an in-memory domain.CarConfigRepository
type MockCarConfigRepository struct {
	Configs      map[int32]*domain.CarConfig
	NextID       int32
	GetActiveErr error
}

// NewMockCarConfigRepository creates a new MockCarConfigRepository
func NewMockCarConfigRepository() *MockCarConfigRepository {
	return &MockCarConfigRepository{
		Configs: make(map[int32]*domain.CarConfig),
		NextID:  1,
	}
}

// AddConfig stores a config as-is (helper for tests)
func (m *MockCarConfigRepository) AddConfig(config *domain.CarConfig) {
	if config.ID == 0 {
		config.ID = m.NextID
		m.NextID++
	}
	m.Configs[config.ID] = config
}

func (m *MockCarConfigRepository) deactivateAll(workspaceID int32) {
	for _, c := range m.Configs {
		if c.WorkspaceID == workspaceID {
			c.IsActive = false
		}
	}
}

// Create stores a config, keeping at most one active per workspace
func (m *MockCarConfigRepository) Create(config *domain.CarConfig) (*domain.CarConfig, error) {
	if config.IsActive {
		m.deactivateAll(config.WorkspaceID)
	}
	created := *config
	created.ID = m.NextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	m.NextID++
	m.Configs[created.ID] = &created
	return copyConfig(&created), nil
}

// find returns the stored config, callers outside the mock get copies
func (m *MockCarConfigRepository) find(workspaceID int32, id int32) (*domain.CarConfig, error) {
	if c, ok := m.Configs[id]; ok && c.WorkspaceID == workspaceID {
		return c, nil
	}
	return nil, domain.ErrCarConfigNotFound
}

func copyConfig(c *domain.CarConfig) *domain.CarConfig {
	out := *c
	return &out
}

// GetByID retrieves a config by ID
func (m *MockCarConfigRepository) GetByID(workspaceID int32, id int32) (*domain.CarConfig, error) {
	c, err := m.find(workspaceID, id)
	if err != nil {
		return nil, err
	}
	return copyConfig(c), nil
}

// GetAll returns the workspace configs, active first then newest
func (m *MockCarConfigRepository) GetAll(workspaceID int32) ([]*domain.CarConfig, error) {
	var result []*domain.CarConfig
	for _, c := range m.Configs {
		if c.WorkspaceID == workspaceID {
			result = append(result, copyConfig(c))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsActive != result[j].IsActive {
			return result[i].IsActive
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// GetActive returns the active config
func (m *MockCarConfigRepository) GetActive(workspaceID int32) (*domain.CarConfig, error) {
	if m.GetActiveErr != nil {
		return nil, m.GetActiveErr
	}
	for _, c := range m.Configs {
		if c.WorkspaceID == workspaceID && c.IsActive {
			return copyConfig(c), nil
		}
	}
	return nil, domain.ErrNoActiveCarConfig
}

// Update overwrites the contract terms, leaving activation and photo untouched
func (m *MockCarConfigRepository) Update(config *domain.CarConfig) (*domain.CarConfig, error) {
	existing, err := m.GetByID(config.WorkspaceID, config.ID)
	if err != nil {
		return nil, err
	}
	updated := *config
	updated.IsActive = existing.IsActive
	updated.PhotoPath = existing.PhotoPath
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	m.Configs[updated.ID] = &updated
	return copyConfig(&updated), nil
}

// Activate makes the config the only active one of its workspace
func (m *MockCarConfigRepository) Activate(workspaceID int32, id int32) (*domain.CarConfig, error) {
	config, err := m.find(workspaceID, id)
	if err != nil {
		return nil, err
	}
	m.deactivateAll(workspaceID)
	config.IsActive = true
	return copyConfig(config), nil
}

// UpdatePhoto sets or clears the photo path
func (m *MockCarConfigRepository) UpdatePhoto(workspaceID int32, id int32, photoPath *string) (*domain.CarConfig, error) {
	config, err := m.find(workspaceID, id)
	if err != nil {
		return nil, err
	}
	config.PhotoPath = photoPath
	return copyConfig(config), nil
}

// Delete removes a config
func (m *MockCarConfigRepository) Delete(workspaceID int32, id int32) error {
	if _, err := m.GetByID(workspaceID, id); err != nil {
		return err
	}
	delete(m.Configs, id)
	return nil
}

// MockPhotoRepository keeps uploaded objects in memory
type MockPhotoRepository struct {
	Objects   map[string][]byte
	UploadErr error
	mu        sync.Mutex
}

// NewMockPhotoRepository creates a new MockPhotoRepository
func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{Objects: make(map[string][]byte)}
}

// Upload stores the object and returns its path
func (m *MockPhotoRepository) Upload(ctx context.Context, objectPath string, data io.Reader, contentType string, size int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, data); err != nil {
		return "", err
	}
	m.Objects[objectPath] = buf.Bytes()
	return objectPath, nil
}

// Delete removes the object
func (m *MockPhotoRepository) Delete(ctx context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, objectPath)
	return nil
}

// GeneratePresignedURL returns a fake signed URL
func (m *MockPhotoRepository) GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error) {
	return "https://storage.test/" + objectPath + "?signed=1", nil
}

// ObjectCount returns the number of stored objects
func (m *MockPhotoRepository) ObjectCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Objects)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	Events []PublishedEvent
	mu     sync.Mutex
}

// PublishedEvent is one captured Publish call
type PublishedEvent struct {
	WorkspaceID int32
	Event       websocket.Event
}

// Publish captures the event
func (m *MockEventPublisher) Publish(workspaceID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// Types returns the published event types in order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Event.Type)
	}
	return types
}
