package schemas

import "embed"

// SchemasFS - JSON-схемы тел мутаций: payloads/<resource>/<operation>.json
//
//go:embed payloads
var SchemasFS embed.FS
