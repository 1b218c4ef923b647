package docs

import _ "embed"

var (
	//go:embed architecture.md
	ArchitectureMD string

	//go:embed promotion.md
	PromotionMD string

	//go:embed configuration.md
	ConfigurationMD string
)
