package repo

import (
	"context"
	"sync"

	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

var _ ctrl.ModuleRepository = &Modules{}

type Modules struct {
	mutex sync.RWMutex
	items map[string]*resource.Module
}

func NewModules() *Modules {
	r := &Modules{
		items: make(map[string]*resource.Module),
	}

	for _, module := range resource.Modules() {
		r.Save(context.Background(), module)
	}

	return r
}

// Find looks a module up by its Ansible name or its command name.
func (r *Modules) Find(ctx context.Context, name string) (*resource.Module, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	module, ok := r.items[name]
	if !ok {
		return nil, entity.ErrModuleNotFound
	}

	return module, nil
}

func (r *Modules) Save(ctx context.Context, module *resource.Module) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.items[module.Name] = module
	if module.Command != "" {
		r.items[module.Command] = module
	}
}
