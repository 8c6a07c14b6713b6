package http

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
)

// OpenAPIPath locates the contract served at /docs/openapi.yaml, relative
// to the working directory of the binary.
var OpenAPIPath = "api/openapi.yaml"

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Wayfarer API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body style="margin:0">
  <div id="swagger-ui"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: '/docs/openapi.yaml', dom_id: '#swagger-ui', deepLinking: true});
  </script>
</body>
</html>`

// SetupDocs serves Swagger UI at /docs and the OpenAPI contract next to it.
// The contract is read once; when it is missing only the UI is served.
func SetupDocs(app *fiber.App) {
	app.Get("/docs", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.SendString(swaggerPage)
	})

	contract, err := os.ReadFile(OpenAPIPath)
	if err != nil {
		slog.Warn("openapi contract unavailable", "path", OpenAPIPath, "error", err)
	}
	app.Get("/docs/openapi.yaml", func(c *fiber.Ctx) error {
		if contract == nil {
			return newError(c, fiber.StatusNotFound, "not_found", "openapi contract not bundled")
		}
		c.Set(fiber.HeaderContentType, "application/yaml")
		return c.Send(contract)
	})
}
