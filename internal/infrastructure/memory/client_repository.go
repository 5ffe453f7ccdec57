package memory

import (
	"context"

	"github.com/sanosuguru/go-club-seat-reservation/internal/domain/client"
)

type ClientRepository struct{ store *Store }

func NewClientRepository(store *Store) *ClientRepository { return &ClientRepository{store: store} }

func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	return r.store.write(ctx, nil, func(st *state) error {
		if contactTaken(st, c.Contact, 0) {
			return client.ErrContactDuplicate
		}
		st.nextClientID++
		c.ID = st.nextClientID
		cp := *c
		st.clients[c.ID] = &cp
		return nil
	})
}

func (r *ClientRepository) GetByID(_ context.Context, id int64) (*client.Client, error) {
	c, ok := r.store.snapshot().clients[id]
	if !ok {
		return nil, client.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *ClientRepository) Search(_ context.Context, query string) ([]*client.Client, error) {
	st := r.store.snapshot()
	result := make([]*client.Client, 0)
	for _, id := range sortedIDs(st.clients) {
		if c := st.clients[id]; c.Matches(query) {
			cp := *c
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *ClientRepository) UpdateContact(ctx context.Context, id int64, contact string) error {
	return r.store.write(ctx, nil, func(st *state) error {
		c, ok := st.clients[id]
		if !ok {
			return client.ErrClientNotFound
		}
		if contactTaken(st, contact, id) {
			return client.ErrContactDuplicate
		}
		c.Contact = contact
		return nil
	})
}

func contactTaken(st *state, contact string, except int64) bool {
	for id, c := range st.clients {
		if id != except && c.Contact == contact {
			return true
		}
	}
	return false
}

var _ client.Repository = (*ClientRepository)(nil)
