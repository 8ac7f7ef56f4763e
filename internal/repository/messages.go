package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/araddon/dateparse"
	"github.com/asaskevich/EventBus"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/securevista/securevista/internal/blobstore"
	"github.com/securevista/securevista/internal/cache"
	"github.com/securevista/securevista/internal/domain"
	"github.com/securevista/securevista/internal/sanitize"
)

const messagesCollection = "messages"

// messageReadConcurrency bounds the per-entity document fan-out on ListAll.
const messageReadConcurrency = 8

// MessageInput carries the fields of a public contact-form submission.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// MessageRepository persists contact submissions with the per-entity document
// model: one object per message, keyed by message id.
type MessageRepository struct {
	store blobstore.Store
	cache cache.CollectionCache
	bus   EventBus.Bus
}

func NewMessageRepository(store blobstore.Store, cc cache.CollectionCache, bus EventBus.Bus) *MessageRepository {
	return &MessageRepository{store: store, cache: cc, bus: bus}
}

// ListAll returns every stored message, newest first. Documents that fail to
// parse are skipped with a log line, never fatal. A store outage degrades to
// the cache mirror, then to an empty list.
func (r *MessageRepository) ListAll(ctx context.Context) []domain.Message {
	objects, err := r.store.List(ctx, blobstore.MessagePrefix)
	if err != nil {
		zap.L().Warn("message store unreachable, trying cache mirror", zap.Error(err))
		if cached, ok := r.fromCache(); ok {
			return cached
		}
		return []domain.Message{}
	}

	var mu sync.Mutex
	messages := make([]domain.Message, 0, len(objects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(messageReadConcurrency)
	for _, obj := range objects {
		obj := obj
		g.Go(func() error {
			payload, err := r.store.Read(gctx, obj)
			if err != nil {
				// raced with a concurrent delete, or transient store error
				zap.L().Warn("skipping unreadable message object",
					zap.String("key", obj.Key), zap.Error(err))
				return nil
			}
			var raw map[string]interface{}
			if err := json.Unmarshal(payload, &raw); err != nil {
				zap.L().Warn("skipping malformed message object",
					zap.String("key", obj.Key), zap.Error(err))
				return nil
			}
			mu.Lock()
			messages = append(messages, sanitize.Message(raw))
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sortMessages(messages)
	r.mirror(messages)
	return messages
}

// Create validates, sanitizes and stores a new submission. Name, email and
// message are required; validation fails before any store I/O.
func (r *MessageRepository) Create(ctx context.Context, input MessageInput) (domain.Message, error) {
	for field, value := range map[string]string{
		"name":    input.Name,
		"email":   input.Email,
		"message": input.Message,
	} {
		if strings.TrimSpace(value) == "" {
			return domain.Message{}, errors.Wrapf(ErrValidationFailed, "missing required field %q", field)
		}
	}

	m := sanitize.NormalizeMessage(domain.Message{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: input.Message,
	})

	payload, err := json.Marshal(m)
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "encode message")
	}
	if _, err := r.store.Write(ctx, blobstore.MessageKey(m.ID), payload); err != nil {
		return domain.Message{}, errors.Wrap(err, "write message")
	}

	if r.bus != nil {
		r.bus.Publish(EventMessageCreated, m.ID)
	}
	return m, nil
}

// GetByID reads one message document.
func (r *MessageRepository) GetByID(ctx context.Context, id string) (domain.Message, error) {
	m, _, err := r.read(ctx, id)
	return m, err
}

// SetField merge-patches the given fields onto a stored message and rewrites
// its document. The id and creation timestamp are immutable. Returns
// blobstore.ErrNotFound when no such message exists.
func (r *MessageRepository) SetField(ctx context.Context, id string, updates map[string]interface{}) (domain.Message, error) {
	m, key, err := r.read(ctx, id)
	if err != nil {
		return domain.Message{}, err
	}

	delete(updates, "id")
	delete(updates, "createdAt")

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &m,
	})
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "build update decoder")
	}
	if err := decoder.Decode(updates); err != nil {
		return domain.Message{}, errors.Wrapf(blobstore.ErrMalformedPayload,
			"apply updates to message %s: %s", id, err.Error())
	}

	payload, err := json.Marshal(sanitize.NormalizeMessage(m))
	if err != nil {
		return domain.Message{}, errors.Wrap(err, "encode message")
	}
	if _, err := r.store.Write(ctx, key, payload); err != nil {
		return domain.Message{}, errors.Wrapf(err, "rewrite message %s", id)
	}
	return m, nil
}

// Delete removes a message document. Deleting an unknown id succeeds.
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, blobstore.MessageKey(id)); err != nil {
		return errors.Wrapf(err, "delete message %s", id)
	}
	if r.bus != nil {
		r.bus.Publish(EventMessageDeleted, id)
	}
	return nil
}

// LastFetch reports when the cache mirror was last refreshed, for display only.
func (r *MessageRepository) LastFetch() (time.Time, bool) {
	return r.cache.LastFetch(messagesCollection)
}

func (r *MessageRepository) read(ctx context.Context, id string) (domain.Message, string, error) {
	objects, err := r.store.List(ctx, blobstore.MessagePrefix+id)
	if err != nil {
		return domain.Message{}, "", errors.Wrapf(err, "locate message %s", id)
	}
	if len(objects) == 0 {
		return domain.Message{}, "", errors.Wrapf(blobstore.ErrNotFound, "message %s", id)
	}

	payload, err := r.store.Read(ctx, objects[0])
	if err != nil {
		return domain.Message{}, "", errors.Wrapf(err, "read message %s", id)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.Message{}, "", errors.Wrapf(blobstore.ErrMalformedPayload,
			"message %s: %s", id, err.Error())
	}
	return sanitize.Message(raw), objects[0].Key, nil
}

func (r *MessageRepository) mirror(messages []domain.Message) {
	payload, err := json.Marshal(messages)
	if err != nil {
		return
	}
	if err := r.cache.Set(messagesCollection, payload); err != nil {
		zap.L().Warn("failed to update message cache mirror", zap.Error(err))
	}
}

func (r *MessageRepository) fromCache() ([]domain.Message, bool) {
	payload, ok := r.cache.Get(messagesCollection)
	if !ok {
		return nil, false
	}
	var messages []domain.Message
	if err := json.Unmarshal(payload, &messages); err != nil {
		zap.L().Warn("message cache mirror corrupted, clearing", zap.Error(err))
		_ = r.cache.Clear(messagesCollection)
		return nil, false
	}
	sortMessages(messages)
	return messages, true
}

// sortMessages orders newest-first by createdAt, parsed leniently because
// historical documents carry more than one timestamp format.
func sortMessages(messages []domain.Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		ti, erri := dateparse.ParseAny(messages[i].CreatedAt)
		tj, errj := dateparse.ParseAny(messages[j].CreatedAt)
		if erri != nil || errj != nil {
			return messages[i].CreatedAt > messages[j].CreatedAt
		}
		return ti.After(tj)
	})
}
