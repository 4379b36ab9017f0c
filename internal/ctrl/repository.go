package ctrl

import (
	"context"

	"github.com/tjjh89017/graylog-manage-go/internal/entity"
	"github.com/tjjh89017/graylog-manage-go/internal/resource"
)

type FamilyRepository interface {
	Find(ctx context.Context, family entity.Family) (*resource.Descriptor, error)
}

type ModuleRepository interface {
	Find(ctx context.Context, name string) (*resource.Module, error)
}
