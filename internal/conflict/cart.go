package conflict

import (
	"encoding/json"

	"github.com/noah-isme/coaching-conflict-api/internal/models"
)

// EnrollmentConflict ties a cart entry to an enrollment it collides with.
type EnrollmentConflict struct {
	CartItemID string         `json:"cartItemId"`
	Conflict   ConflictDetail `json:"conflict"`
}

// CartPairConflict ties two cart entries that collide with each other.
// CartItemID is always the earlier entry in the cart.
type CartPairConflict struct {
	CartItemID  string         `json:"cartItemId"`
	OtherItemID string         `json:"otherItemId"`
	Conflict    ConflictDetail `json:"conflict"`
}

// CartValidation aggregates every conflict found across a cart.
type CartValidation struct {
	HasConflicts        bool                 `json:"hasConflicts"`
	CartPairConflicts   []CartPairConflict   `json:"cartPairConflicts"`
	EnrollmentConflicts []EnrollmentConflict `json:"enrollmentConflicts"`
	ConflictingItemIDs  *IDSet               `json:"conflictingItemIds"`
	InfoMessages        []string             `json:"infoMessages"`
}

// ValidateCart checks each cart entry against committed enrollments and
// against every later cart entry. Entries that cannot be normalised are skipped.
func ValidateCart(cart []models.CartItem, passes []models.Pass) CartValidation {
	enrolled := FromPasses(passes)

	out := CartValidation{
		CartPairConflicts:   []CartPairConflict{},
		EnrollmentConflicts: []EnrollmentConflict{},
		ConflictingItemIDs:  NewIDSet(),
	}
	infos := newMessageSet()

	items := make([]*ScheduleItem, len(cart))
	for i := range cart {
		if item, ok := FromCartItem(cart[i]); ok {
			items[i] = &item
		}
	}

	for i, item := range items {
		if item == nil {
			continue
		}
		candidate := CandidateFromItem(*item)

		res := Detect(candidate, enrolled)
		for _, detail := range res.Conflicts {
			out.EnrollmentConflicts = append(out.EnrollmentConflicts, EnrollmentConflict{
				CartItemID: item.ID,
				Conflict:   detail,
			})
			out.ConflictingItemIDs.Add(item.ID)
		}
		infos.add(res.InfoMessages...)

		for _, other := range items[i+1:] {
			if other == nil {
				continue
			}
			res := Detect(candidate, []ScheduleItem{*other})
			for _, detail := range res.Conflicts {
				out.CartPairConflicts = append(out.CartPairConflicts, CartPairConflict{
					CartItemID:  item.ID,
					OtherItemID: other.ID,
					Conflict:    detail,
				})
				out.ConflictingItemIDs.Add(item.ID)
				out.ConflictingItemIDs.Add(other.ID)
			}
			infos.add(res.InfoMessages...)
		}
	}

	out.InfoMessages = infos.list()
	out.HasConflicts = len(out.CartPairConflicts) > 0 || len(out.EnrollmentConflicts) > 0
	return out
}

// IDSet is an insertion-ordered set of item ids. It encodes as a JSON array.
type IDSet struct {
	order []string
	index map[string]struct{}
}

// NewIDSet returns an empty set.
func NewIDSet(ids ...string) *IDSet {
	s := &IDSet{order: []string{}, index: make(map[string]struct{})}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id if it is not already present.
func (s *IDSet) Add(id string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.order = append(s.order, id)
}

// Has reports membership.
func (s *IDSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Len returns the number of ids.
func (s *IDSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// IDs returns a copy of the ids in insertion order.
func (s *IDSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// MarshalJSON implements json.Marshaler.
func (s *IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = *NewIDSet(ids...)
	return nil
}

type messageSet struct {
	seen  map[string]struct{}
	items []string
}

func newMessageSet() *messageSet {
	return &messageSet{seen: make(map[string]struct{}), items: []string{}}
}

func (m *messageSet) add(messages ...string) {
	for _, msg := range messages {
		if _, ok := m.seen[msg]; ok {
			continue
		}
		m.seen[msg] = struct{}{}
		m.items = append(m.items, msg)
	}
}

func (m *messageSet) list() []string {
	return m.items
}
