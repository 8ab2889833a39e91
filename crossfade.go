package crossfade

import _ "embed"

//go:embed VERSION
var Version string

//go:embed crossfade.toml
var DefaultConfig string
