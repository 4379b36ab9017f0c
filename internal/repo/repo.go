package repo

import (
	"github.com/google/wire"
	"github.com/tjjh89017/graylog-manage-go/internal/ctrl"
)

var DefaultSet = wire.NewSet(
	NewFamilies,
	wire.Bind(new(ctrl.FamilyRepository), new(*Families)),
	NewModules,
	wire.Bind(new(ctrl.ModuleRepository), new(*Modules)),
)
