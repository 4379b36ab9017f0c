package repo

import (
	"context"
	"sync"

	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

var _ ctrl.FamilyRepository = &Families{}

type Families struct {
	mutex sync.RWMutex
	items map[entity.Family]*resource.Descriptor
}

// NewFamilies returns a repository holding every built-in family.
func NewFamilies() *Families {
	r := &Families{
		items: make(map[entity.Family]*resource.Descriptor),
	}

	for _, descriptor := range resource.All() {
		r.Save(context.Background(), descriptor)
	}

	return r
}

func (r *Families) Find(ctx context.Context, family entity.Family) (*resource.Descriptor, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	descriptor, ok := r.items[family]
	if !ok {
		return nil, entity.ErrFamilyNotFound
	}

	return descriptor, nil
}

func (r *Families) Save(ctx context.Context, descriptor *resource.Descriptor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.items[descriptor.Family] = descriptor
}
