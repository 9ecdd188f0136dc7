// Package memory provides an in-memory implementation of every repository
// plus the transaction manager. The ledger store contract only asks for
// atomic per-record updates, so this store is a drop-in backend for tests
// and for running the engine without Postgres.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/warzonebot/warzone-core/internal/domain"
	"gorm.io/gorm"
)

type invKey struct {
	userID int64
	kind   domain.ItemKind
	name   string
}

type defKey struct {
	userID int64
	name   string
}

// Store holds all game state behind a single mutex. Run snapshots the state
// and restores it when the transaction function errors, giving the same
// all-or-nothing behavior as a database transaction.
type Store struct {
	mu sync.Mutex

	users     map[int64]domain.User
	inventory map[invKey]domain.InventoryEntry
	defenses  map[defKey]domain.DefenseStructure
	attacks   []domain.AttackRecord
	boxes     []domain.BoxOpenRecord
	events    map[string]domain.OutboxEvent

	nextAttackID int64
	nextBoxID    int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]domain.User),
		inventory: make(map[invKey]domain.InventoryEntry),
		defenses:  make(map[defKey]domain.DefenseStructure),
		events:    make(map[string]domain.OutboxEvent),
	}
}

// Run implements domain.TxManager. Transactions are serialized; fn receives
// a nil *gorm.DB, which every memory repository ignores.
func (s *Store) Run(fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(nil); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshotState struct {
	users        map[int64]domain.User
	inventory    map[invKey]domain.InventoryEntry
	defenses     map[defKey]domain.DefenseStructure
	attacks      []domain.AttackRecord
	boxes        []domain.BoxOpenRecord
	events       map[string]domain.OutboxEvent
	nextAttackID int64
	nextBoxID    int64
}

func (s *Store) snapshot() snapshotState {
	snap := snapshotState{
		users:        make(map[int64]domain.User, len(s.users)),
		inventory:    make(map[invKey]domain.InventoryEntry, len(s.inventory)),
		defenses:     make(map[defKey]domain.DefenseStructure, len(s.defenses)),
		attacks:      append([]domain.AttackRecord(nil), s.attacks...),
		boxes:        append([]domain.BoxOpenRecord(nil), s.boxes...),
		events:       make(map[string]domain.OutboxEvent, len(s.events)),
		nextAttackID: s.nextAttackID,
		nextBoxID:    s.nextBoxID,
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	for k, v := range s.inventory {
		snap.inventory[k] = v
	}
	for k, v := range s.defenses {
		snap.defenses[k] = v
	}
	for k, v := range s.events {
		snap.events[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshotState) {
	s.users = snap.users
	s.inventory = snap.inventory
	s.defenses = snap.defenses
	s.attacks = snap.attacks
	s.boxes = snap.boxes
	s.events = snap.events
	s.nextAttackID = snap.nextAttackID
	s.nextBoxID = snap.nextBoxID
}

// Users returns the user repository view of the store.
func (s *Store) Users() domain.UserRepository { return &userRepo{s} }

// Inventory returns the inventory repository view of the store.
func (s *Store) Inventory() domain.InventoryRepository { return &inventoryRepo{s} }

// Attacks returns the attack log view of the store.
func (s *Store) Attacks() domain.AttackRepository { return &attackRepo{s} }

// Boxes returns the box log view of the store.
func (s *Store) Boxes() domain.BoxRepository { return &boxRepo{s} }

// Outbox returns the outbox view of the store.
func (s *Store) Outbox() domain.OutboxRepository { return &outboxRepo{s} }

// ----- users -----

type userRepo struct{ s *Store }

func (r *userRepo) WithTransaction(tx *gorm.DB) domain.UserRepository { return r }

func (r *userRepo) GetByID(id int64) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		copied := u
		return &copied, nil
	}
	return nil, nil
}

func (r *userRepo) GetByIDForUpdate(id int64) (*domain.User, error) {
	return r.GetByID(id)
}

func (r *userRepo) GetByUsername(username string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Create(user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) Update(user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) ListIDs() ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.users))
	for id := range r.s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *userRepo) AggregateStats() (*domain.GlobalStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &domain.GlobalStats{}
	for _, u := range r.s.users {
		stats.TotalUsers++
		stats.TotalCoins += u.Coin
		stats.TotalDamage += u.TotalDamage
	}
	return stats, nil
}

// ----- inventory -----

type inventoryRepo struct{ s *Store }

func (r *inventoryRepo) WithTransaction(tx *gorm.DB) domain.InventoryRepository { return r }

func (r *inventoryRepo) GetQuantity(userID int64, kind domain.ItemKind, name string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.inventory[invKey{userID, kind, name}].Quantity, nil
}

func (r *inventoryRepo) List(userID int64) ([]*domain.InventoryEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var entries []*domain.InventoryEntry
	for _, e := range r.s.inventory {
		if e.UserID == userID && e.Quantity > 0 {
			copied := e
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ItemKind != entries[j].ItemKind {
			return entries[i].ItemKind < entries[j].ItemKind
		}
		return entries[i].ItemName < entries[j].ItemName
	})
	return entries, nil
}

func (r *inventoryRepo) Add(userID int64, kind domain.ItemKind, name string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := invKey{userID, kind, name}
	entry := r.s.inventory[key]
	entry.UserID = userID
	entry.ItemKind = kind
	entry.ItemName = name
	entry.Quantity += qty
	entry.UpdatedAt = time.Now()
	r.s.inventory[key] = entry
	return nil
}

func (r *inventoryRepo) Remove(userID int64, kind domain.ItemKind, name string, qty int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := invKey{userID, kind, name}
	entry, ok := r.s.inventory[key]
	if !ok || entry.Quantity < qty {
		return domain.NewAppError(domain.ErrCodeMissingRequirements, "Not enough items to consume", 400, nil)
	}
	entry.Quantity -= qty
	entry.UpdatedAt = time.Now()
	r.s.inventory[key] = entry
	return nil
}

func (r *inventoryRepo) GetDefense(userID int64, name string) (*domain.DefenseStructure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.defenses[defKey{userID, name}]; ok {
		copied := d
		return &copied, nil
	}
	return nil, nil
}

func (r *inventoryRepo) ListDefenses(userID int64) ([]*domain.DefenseStructure, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var defs []*domain.DefenseStructure
	for _, d := range r.s.defenses {
		if d.UserID == userID {
			copied := d
			defs = append(defs, &copied)
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs, nil
}

func (r *inventoryRepo) UpsertDefense(d *domain.DefenseStructure) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.UpdatedAt = time.Now()
	r.s.defenses[defKey{d.UserID, d.Name}] = *d
	return nil
}

// ----- attacks -----

type attackRepo struct{ s *Store }

func (r *attackRepo) WithTransaction(tx *gorm.DB) domain.AttackRepository { return r }

func (r *attackRepo) Create(record *domain.AttackRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAttackID++
	record.ID = r.s.nextAttackID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.s.attacks = append(r.s.attacks, *record)
	return nil
}

func (r *attackRepo) ListByAttacker(attackerID int64, limit int) ([]*domain.AttackRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var records []*domain.AttackRecord
	for i := len(r.s.attacks) - 1; i >= 0 && len(records) < limit; i-- {
		if r.s.attacks[i].AttackerID == attackerID {
			copied := r.s.attacks[i]
			records = append(records, &copied)
		}
	}
	return records, nil
}

// ----- boxes -----

type boxRepo struct{ s *Store }

func (r *boxRepo) WithTransaction(tx *gorm.DB) domain.BoxRepository { return r }

func (r *boxRepo) Create(record *domain.BoxOpenRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextBoxID++
	record.ID = r.s.nextBoxID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	r.s.boxes = append(r.s.boxes, *record)
	return nil
}

func (r *boxRepo) CountSince(userID int64, boxKind string, since time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, b := range r.s.boxes {
		if b.UserID == userID && b.BoxKind == boxKind && !b.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ----- outbox -----

type outboxRepo struct{ s *Store }

func (r *outboxRepo) WithTransaction(tx *gorm.DB) domain.OutboxRepository { return r }

func (r *outboxRepo) Save(event *domain.OutboxEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.s.events[event.ID] = *event
	return nil
}

func (r *outboxRepo) GetPendingEvents(limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, e := range r.s.events {
		if e.Status == domain.EventStatusPending {
			copied := e
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].CreatedAt.Before(events[j].CreatedAt) })
	if len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (r *outboxRepo) MarkAsProcessed(eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.events[eventID]; ok {
		now := time.Now()
		e.Status = domain.EventStatusProcessed
		e.ProcessedAt = &now
		r.s.events[eventID] = e
	}
	return nil
}

func (r *outboxRepo) MarkAsFailed(eventID string, errMsg string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.events[eventID]; ok {
		e.Status = domain.EventStatusFailed
		e.Error = &errMsg
		r.s.events[eventID] = e
	}
	return nil
}

func (r *outboxRepo) IncrementRetryCount(eventID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.events[eventID]; ok {
		e.RetryCount++
		r.s.events[eventID] = e
	}
	return nil
}
