package swagger

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

type SwaggerConfig struct {
	Title         string
	SwaggerDocURL string
	LoginURL      string
}

const swaggerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Title}}</title>
  <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  <style>
    body { margin: 0; background: #fafafa; }
    .gg-login { padding: 12px 20px; font-family: sans-serif; font-size: 13px; border-bottom: 1px solid #ddd; }
    .gg-login input { margin-right: 6px; padding: 4px 8px; }
  </style>
</head>
<body>
  <div class="gg-login">
    <input id="gg-email" type="text" placeholder="Email" />
    <input id="gg-password" type="password" placeholder="Password" />
    <button id="gg-login-btn">Login</button>
    <span id="gg-login-status"></span>
  </div>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.LOGIN_URL = {{.LoginURL}};
    window.onload = function () {
      window.ui = SwaggerUIBundle({
        url: {{.SwaggerDocURL}},
        dom_id: "#swagger-ui",
        persistAuthorization: true
      });
    };
    document.getElementById("gg-login-btn").onclick = async function () {
      const status = document.getElementById("gg-login-status");
      const response = await fetch(window.LOGIN_URL, {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({
          email: document.getElementById("gg-email").value,
          password: document.getElementById("gg-password").value
        })
      });
      const body = await response.json();
      if (response.ok && body.data && body.data.access_token) {
        window.ui.preauthorizeApiKey("BearerAuth", "Bearer " + body.data.access_token);
        status.textContent = "Signed in as " + body.data.user.role;
      } else {
        status.textContent = body.message || "Login failed";
      }
    };
  </script>
</body>
</html>`

var swaggerTemplate = template.Must(template.New("swagger").Parse(swaggerHTML))

// ServeSwaggerUI renders the Swagger UI page with a login box that authorizes the explorer
func ServeSwaggerUI(config SwaggerConfig) gin.HandlerFunc {
	if config.Title == "" {
		config.Title = "API Documentation"
	}
	if config.SwaggerDocURL == "" {
		config.SwaggerDocURL = "/swagger/doc.json"
	}
	if config.LoginURL == "" {
		config.LoginURL = "/api/auth/login"
	}

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := swaggerTemplate.Execute(c.Writer, config); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render Swagger UI"})
		}
	}
}

// ServeDoc writes the OpenAPI document registered under instanceName
func ServeDoc(instanceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc(instanceName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "API documentation is not registered"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
