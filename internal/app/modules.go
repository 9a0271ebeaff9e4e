package app

import (
	"github.com/specialistvlad/modelbind/internal/registry"
	"github.com/specialistvlad/modelbind/models/gdp"
	"github.com/specialistvlad/modelbind/models/revenue"
)

// CoreModules is the definitive list of all model packages that are compiled
// into the modelbind binary.
var CoreModules = []registry.Module{
	&gdp.Module{},
	&revenue.Module{},
}
