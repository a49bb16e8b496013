package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/receiptwise/receiptwise-backend/internal/domain"
	"github.com/receiptwise/receiptwise-backend/internal/websocket"
	"github.com/shopspring/decimal"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(auth0ID, email string, name, pictureURL *string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByAuth0ID(_ context.Context, auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) CreateOrGetByAuth0ID(_ context.Context, auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
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
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.AddUser(user)
	return user, nil
}

// AddUser adds a user to the mock repository (test helper)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	ByUserID   map[uuid.UUID]*domain.Workspace
	ByAuth0ID  map[string]*domain.Workspace
	nextID     int32
	ListErr    error
}

func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		ByUserID:   make(map[uuid.UUID]*domain.Workspace),
		ByAuth0ID:  make(map[string]*domain.Workspace),
		nextID:     1,
	}
}

func (m *MockWorkspaceRepository) GetByID(_ context.Context, id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

func (m *MockWorkspaceRepository) GetByUserID(_ context.Context, userID uuid.UUID) (*domain.Workspace, error) {
	if ws, ok := m.ByUserID[userID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

func (m *MockWorkspaceRepository) GetByUserAuth0ID(_ context.Context, auth0ID string) (*domain.Workspace, error) {
	if ws, ok := m.ByAuth0ID[auth0ID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

func (m *MockWorkspaceRepository) Create(_ context.Context, workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.nextID
	m.nextID++
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = time.Now()
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	return workspace, nil
}

func (m *MockWorkspaceRepository) ListIDs(_ context.Context) ([]int32, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	ids := make([]int32, 0, len(m.Workspaces))
	for id := range m.Workspaces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// AddWorkspace adds a workspace reachable by user id and auth0 id (test helper)
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace, auth0ID string) {
	m.Workspaces[workspace.ID] = workspace
	m.ByUserID[workspace.UserID] = workspace
	if auth0ID != "" {
		m.ByAuth0ID[auth0ID] = workspace
	}
	if workspace.ID >= m.nextID {
		m.nextID = workspace.ID + 1
	}
}

// MockTransactionRepository is an in-memory domain.TransactionRepository.
// Safe for the concurrent reads issued by errgroup fetches.
type MockTransactionRepository struct {
	mu           sync.Mutex
	Transactions map[int32]*domain.Transaction
	nextID       int32
	Err          error // returned by every read when set
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[int32]*domain.Transaction),
		nextID:       1,
	}
}

// AddTransaction stores a transaction as-is (test helper)
func (m *MockTransactionRepository) AddTransaction(t *domain.Transaction) *domain.Transaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == 0 {
		t.ID = m.nextID
	}
	if t.ID >= m.nextID {
		m.nextID = t.ID + 1
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	m.Transactions[t.ID] = t
	return t
}

func (m *MockTransactionRepository) Create(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	t.ID = 0
	return m.AddTransaction(t), nil
}

func (m *MockTransactionRepository) CreateBatch(ctx context.Context, transactions []*domain.Transaction) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	for _, t := range transactions {
		if _, err := m.Create(ctx, t); err != nil {
			return 0, err
		}
	}
	return len(transactions), nil
}

func (m *MockTransactionRepository) GetByID(_ context.Context, workspaceID int32, id int32) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	t, ok := m.Transactions[id]
	if !ok || t.WorkspaceID != workspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

func (m *MockTransactionRepository) workspaceRows(workspaceID int32, keep func(*domain.Transaction) bool) []*domain.Transaction {
	rows := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.WorkspaceID == workspaceID && (keep == nil || keep(t)) {
			rows = append(rows, t)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].OccurredOn.Equal(rows[j].OccurredOn) {
			return rows[i].OccurredOn.After(rows[j].OccurredOn)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows
}

func (m *MockTransactionRepository) List(_ context.Context, workspaceID int32, filters *domain.TransactionFilters) (*domain.PaginatedTransactions, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	rows := m.workspaceRows(workspaceID, func(t *domain.Transaction) bool {
		return matchesFilters(t, filters)
	})

	page, pageSize := filters.Pagination()
	start := int((page - 1) * pageSize)
	end := start + int(pageSize)
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return domain.NewPaginatedTransactions(rows[start:end], page, pageSize, int64(len(rows))), nil
}

func matchesFilters(t *domain.Transaction, f *domain.TransactionFilters) bool {
	if f == nil {
		return true
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.IsIncome != nil && t.IsIncome != *f.IsIncome {
		return false
	}
	if f.StartDate != nil && t.OccurredOn.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.OccurredOn.After(*f.EndDate) {
		return false
	}
	if f.Search != nil && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(*f.Search)) {
		return false
	}
	if f.Tag != nil {
		found := false
		for _, tag := range t.Tags {
			if tag == *f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (m *MockTransactionRepository) ListAll(_ context.Context, workspaceID int32) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.workspaceRows(workspaceID, nil), nil
}

func (m *MockTransactionRepository) ListExpensesInRange(_ context.Context, workspaceID int32, start, end time.Time) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.workspaceRows(workspaceID, func(t *domain.Transaction) bool {
		return !t.IsIncome && !t.OccurredOn.Before(start) && !t.OccurredOn.After(end)
	}), nil
}

func (m *MockTransactionRepository) ListInRange(_ context.Context, workspaceID int32, start, end time.Time) ([]*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.workspaceRows(workspaceID, func(t *domain.Transaction) bool {
		return !t.OccurredOn.Before(start) && !t.OccurredOn.After(end)
	}), nil
}

func (m *MockTransactionRepository) Update(_ context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Transactions[t.ID]
	if !ok || existing.WorkspaceID != t.WorkspaceID {
		return nil, domain.ErrTransactionNotFound
	}
	t.UpdatedAt = time.Now()
	m.Transactions[t.ID] = t
	return t, nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, workspaceID int32, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Transactions[id]
	if !ok || t.WorkspaceID != workspaceID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockTransactionRepository) DeleteMany(_ context.Context, workspaceID int32, ids []int32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, id := range ids {
		if t, ok := m.Transactions[id]; ok && t.WorkspaceID == workspaceID {
			delete(m.Transactions, id)
			n++
		}
	}
	return n, nil
}

func (m *MockTransactionRepository) SumExpensesByCategory(_ context.Context, workspaceID int32, start, end time.Time) ([]*domain.CategoryTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	sums := make(map[string]decimal.Decimal)
	for _, t := range m.workspaceRows(workspaceID, nil) {
		if t.IsIncome || t.OccurredOn.Before(start) || t.OccurredOn.After(end) {
			continue
		}
		sums[t.Category] = sums[t.Category].Add(t.Amount)
	}
	totals := make([]*domain.CategoryTotal, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, &domain.CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })
	return totals, nil
}

func (m *MockTransactionRepository) GetSummary(_ context.Context, workspaceID int32) (*domain.TransactionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	summary := &domain.TransactionSummary{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, t := range m.workspaceRows(workspaceID, nil) {
		if t.IsIncome {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
		}
		summary.Count++
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpenses)
	return summary, nil
}

func (m *MockTransactionRepository) ListCategories(_ context.Context, workspaceID int32, isIncome *bool) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, t := range m.workspaceRows(workspaceID, nil) {
		if isIncome != nil && t.IsIncome != *isIncome {
			continue
		}
		if !seen[t.Category] {
			seen[t.Category] = true
			categories = append(categories, t.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *MockTransactionRepository) ReassignCategory(_ context.Context, workspaceID int32, from, to string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.Transactions {
		if t.WorkspaceID == workspaceID && t.Category == from {
			t.Category = to
			n++
		}
	}
	return n, nil
}

func (m *MockTransactionRepository) ListTags(_ context.Context, workspaceID int32) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, t := range m.workspaceRows(workspaceID, nil) {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// MockBudgetRepository is an in-memory domain.BudgetRepository
type MockBudgetRepository struct {
	mu      sync.Mutex
	Budgets map[int32]*domain.Budget
	nextID  int32
	Err     error
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[int32]*domain.Budget), nextID: 1}
}

// AddBudget stores a budget as-is (test helper)
func (m *MockBudgetRepository) AddBudget(b *domain.Budget) *domain.Budget {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID == 0 {
		b.ID = m.nextID
	}
	if b.ID >= m.nextID {
		m.nextID = b.ID + 1
	}
	m.Budgets[b.ID] = b
	return b
}

func (m *MockBudgetRepository) Create(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	b.ID = 0
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	return m.AddBudget(b), nil
}

func (m *MockBudgetRepository) GetByID(_ context.Context, workspaceID int32, id int32) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok || b.WorkspaceID != workspaceID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

func (m *MockBudgetRepository) list(workspaceID int32, keep func(*domain.Budget) bool) []*domain.Budget {
	budgets := make([]*domain.Budget, 0)
	for _, b := range m.Budgets {
		if b.WorkspaceID == workspaceID && (keep == nil || keep(b)) {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Year != budgets[j].Year {
			return budgets[i].Year > budgets[j].Year
		}
		if budgets[i].Month != budgets[j].Month {
			return budgets[i].Month > budgets[j].Month
		}
		return budgets[i].ID < budgets[j].ID
	})
	return budgets
}

func (m *MockBudgetRepository) ListByWorkspace(_ context.Context, workspaceID int32) ([]*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.list(workspaceID, nil), nil
}

func (m *MockBudgetRepository) ListByMonth(_ context.Context, workspaceID int32, year, month int) ([]*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.list(workspaceID, func(b *domain.Budget) bool {
		return b.Year == year && b.Month == month
	}), nil
}

func (m *MockBudgetRepository) Update(_ context.Context, b *domain.Budget) (*domain.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.Budgets[b.ID]
	if !ok || existing.WorkspaceID != b.WorkspaceID {
		return nil, domain.ErrBudgetNotFound
	}
	b.UpdatedAt = time.Now()
	m.Budgets[b.ID] = b
	return b, nil
}

func (m *MockBudgetRepository) Delete(_ context.Context, workspaceID int32, id int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok || b.WorkspaceID != workspaceID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockGoalRepository is an in-memory domain.GoalRepository
type MockGoalRepository struct {
	Goals  map[int32]*domain.Goal
	nextID int32
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[int32]*domain.Goal), nextID: 1}
}

// AddGoal stores a goal as-is (test helper)
func (m *MockGoalRepository) AddGoal(g *domain.Goal) *domain.Goal {
	if g.ID == 0 {
		g.ID = m.nextID
	}
	if g.ID >= m.nextID {
		m.nextID = g.ID + 1
	}
	m.Goals[g.ID] = g
	return g
}

func (m *MockGoalRepository) Create(_ context.Context, g *domain.Goal) (*domain.Goal, error) {
	g.ID = 0
	g.CreatedAt = time.Now()
	g.UpdatedAt = g.CreatedAt
	return m.AddGoal(g), nil
}

func (m *MockGoalRepository) GetByID(_ context.Context, workspaceID int32, id int32) (*domain.Goal, error) {
	g, ok := m.Goals[id]
	if !ok || g.WorkspaceID != workspaceID {
		return nil, domain.ErrGoalNotFound
	}
	copied := *g
	return &copied, nil
}

func (m *MockGoalRepository) ListByWorkspace(_ context.Context, workspaceID int32) ([]*domain.Goal, error) {
	goals := make([]*domain.Goal, 0)
	for _, g := range m.Goals {
		if g.WorkspaceID == workspaceID {
			goals = append(goals, g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals, nil
}

func (m *MockGoalRepository) Update(_ context.Context, g *domain.Goal) (*domain.Goal, error) {
	existing, ok := m.Goals[g.ID]
	if !ok || existing.WorkspaceID != g.WorkspaceID {
		return nil, domain.ErrGoalNotFound
	}
	g.UpdatedAt = time.Now()
	m.Goals[g.ID] = g
	return g, nil
}

func (m *MockGoalRepository) Delete(_ context.Context, workspaceID int32, id int32) error {
	g, ok := m.Goals[id]
	if !ok || g.WorkspaceID != workspaceID {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// MockCategoryRuleRepository is an in-memory domain.CategoryRuleRepository.
// Keywords are unique per workspace.
type MockCategoryRuleRepository struct {
	Rules  map[int32]*domain.CategoryRule
	nextID int32
	Err    error
}

func NewMockCategoryRuleRepository() *MockCategoryRuleRepository {
	return &MockCategoryRuleRepository{Rules: make(map[int32]*domain.CategoryRule), nextID: 1}
}

// AddRule stores a rule as-is (test helper)
func (m *MockCategoryRuleRepository) AddRule(r *domain.CategoryRule) *domain.CategoryRule {
	if r.ID == 0 {
		r.ID = m.nextID
	}
	if r.ID >= m.nextID {
		m.nextID = r.ID + 1
	}
	m.Rules[r.ID] = r
	return r
}

func (m *MockCategoryRuleRepository) keywordTaken(r *domain.CategoryRule) bool {
	for _, existing := range m.Rules {
		if existing.WorkspaceID == r.WorkspaceID && existing.Keyword == r.Keyword && existing.ID != r.ID {
			return true
		}
	}
	return false
}

func (m *MockCategoryRuleRepository) Create(_ context.Context, r *domain.CategoryRule) (*domain.CategoryRule, error) {
	r.ID = 0
	if m.keywordTaken(r) {
		return nil, domain.ErrCategoryRuleExists
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	return m.AddRule(r), nil
}

func (m *MockCategoryRuleRepository) GetByID(_ context.Context, workspaceID int32, id int32) (*domain.CategoryRule, error) {
	r, ok := m.Rules[id]
	if !ok || r.WorkspaceID != workspaceID {
		return nil, domain.ErrCategoryRuleNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *MockCategoryRuleRepository) ListByWorkspace(_ context.Context, workspaceID int32) ([]*domain.CategoryRule, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rules := make([]*domain.CategoryRule, 0)
	for _, r := range m.Rules {
		if r.WorkspaceID == workspaceID {
			rules = append(rules, r)
		}
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Keyword < rules[j].Keyword })
	return rules, nil
}

func (m *MockCategoryRuleRepository) Update(_ context.Context, r *domain.CategoryRule) (*domain.CategoryRule, error) {
	existing, ok := m.Rules[r.ID]
	if !ok || existing.WorkspaceID != r.WorkspaceID {
		return nil, domain.ErrCategoryRuleNotFound
	}
	if m.keywordTaken(r) {
		return nil, domain.ErrCategoryRuleExists
	}
	r.UpdatedAt = time.Now()
	m.Rules[r.ID] = r
	return r, nil
}

func (m *MockCategoryRuleRepository) Delete(_ context.Context, workspaceID int32, id int32) error {
	r, ok := m.Rules[id]
	if !ok || r.WorkspaceID != workspaceID {
		return domain.ErrCategoryRuleNotFound
	}
	delete(m.Rules, id)
	return nil
}

// MockReceiptStore keeps uploaded objects in memory
type MockReceiptStore struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	Deleted   []string
	UploadErr error
	// FailAfter makes uploads fail once this many objects have been stored (0 disables)
	FailAfter int
}

func NewMockReceiptStore() *MockReceiptStore {
	return &MockReceiptStore{Objects: make(map[string][]byte)}
}

func (m *MockReceiptStore) Upload(_ context.Context, objectPath string, data io.Reader, _ string, _ int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	if m.FailAfter > 0 && len(m.Objects) >= m.FailAfter {
		return "", fmt.Errorf("mock store full")
	}
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	m.Objects[objectPath] = body
	return objectPath, nil
}

func (m *MockReceiptStore) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, path)
	m.Deleted = append(m.Deleted, path)
	return nil
}

func (m *MockReceiptStore) GeneratePresignedURL(_ context.Context, path string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("https://receipts.test/%s?expires=%d", path, int(expiry.Seconds())), nil
}

// MockLanguageModel returns a canned response and records every request
type MockLanguageModel struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []domain.GenerateRequest
}

func (m *MockLanguageModel) Generate(_ context.Context, req domain.GenerateRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// LastRequest returns the most recent request, or the zero value
func (m *MockLanguageModel) LastRequest() domain.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return domain.GenerateRequest{}
	}
	return m.Requests[len(m.Requests)-1]
}

// MockEventPublisher records published websocket events
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []PublishedEvent
}

type PublishedEvent struct {
	WorkspaceID int32
	Event       websocket.Event
}

func (m *MockEventPublisher) Publish(workspaceID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishedEvent{WorkspaceID: workspaceID, Event: event})
}

// Types returns the type of every recorded event in publish order
func (m *MockEventPublisher) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.Events))
	for i, e := range m.Events {
		types[i] = e.Event.Type
	}
	return types
}

// MockAlertNotifier records alert notifications per workspace
type MockAlertNotifier struct {
	mu    sync.Mutex
	Calls map[int32][]domain.Alert
	Err   error
}

func NewMockAlertNotifier() *MockAlertNotifier {
	return &MockAlertNotifier{Calls: make(map[int32][]domain.Alert)}
}

func (m *MockAlertNotifier) NotifyAlerts(_ context.Context, workspaceID int32, _, _ int, alerts []domain.Alert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Calls[workspaceID] = append(m.Calls[workspaceID], alerts...)
	return nil
}

// CallCount returns how many workspaces received alerts
func (m *MockAlertNotifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
