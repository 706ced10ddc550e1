package app

import (
	"github.com/weavekit/weavekit/internal/catalog"
	"github.com/weavekit/weavekit/modules/anthropic"
	"github.com/weavekit/weavekit/modules/httpclient"
	"github.com/weavekit/weavekit/modules/localstore"
	"github.com/weavekit/weavekit/modules/memstore"
	"github.com/weavekit/weavekit/modules/ollama"
	"github.com/weavekit/weavekit/modules/openai"
)

// coreModules is the definitive list of all modules that are compiled into
// the weavekit binary.
var coreModules = []catalog.Module{
	&httpclient.Module{},
	&openai.Module{},
	&anthropic.Module{},
	&ollama.Module{},
	&localstore.Module{},
	&memstore.Module{},
}
