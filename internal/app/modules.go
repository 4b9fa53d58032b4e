package app

import (
	"github.com/vk/pyrite/components/greeters"
	"github.com/vk/pyrite/components/hello"
	"github.com/vk/pyrite/internal/registry"
)

// coreModules lists the component families compiled into the binary.
// Tests pass their own modules to NewApp to run against isolated
// registries.
var coreModules = []registry.Module{
	&hello.Module{},
	&greeters.Module{},
}
