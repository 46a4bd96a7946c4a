package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// HandleTestErrors serves a page whose script behaves like the canonical
// misbehaving content script: it logs a greeting, then crashes setting a
// property on undefined. Point a captured Chrome tab here to exercise the
// pump end to end.
func (h *Handlers) HandleTestErrors(c *fiber.Ctx) error {
	html := `
	<html>
		<head>
			<style>
				.log { margin: 10px; padding: 10px; border: 1px solid #ccc; }
				.error { color: red; }
			</style>
		</head>
		<body>
			<h1>Testing Extension Errors</h1>
			<div id="logs"></div>
			<script>
				function addLog(msg, isError = false) {
					const div = document.createElement('div');
					div.className = 'log' + (isError ? ' error' : '');
					div.textContent = msg;
					document.getElementById('logs').appendChild(div);
				}

				function logHelloWorld() {
					addLog('Logging greeting...');
					console.log('Hello, World!');
				}

				logHelloWorld();

				// Crash with a TypeError on an undefined property.
				addLog('Triggering runtime error...', true);
				var baz;
				baz.foo = 'bar';
			</script>
		</body>
	</html>
	`
	return c.Type("html").SendString(html)
}
