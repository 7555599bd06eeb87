// Package docs embeds the OpenAPI document and the Swagger UI page.
package docs

import (
	_ "embed"
	"strings"
)

//go:embed openapi.yaml
var OpenAPI []byte

const uiTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Finance API docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "{{SPEC_URL}}", dom_id: "#swagger-ui" });
  </script>
</body>
</html>
`

// UI renders the Swagger UI page pointed at specURL.
func UI(specURL string) string {
	return strings.ReplaceAll(uiTemplate, "{{SPEC_URL}}", specURL)
}
