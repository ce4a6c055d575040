package main

import "github.com/killallgit/practitioners-pod/cmd"

// @title           The Practitioners Pod API
// @version         1.0.0
// @description     Episodes, guests, submission forms and the admin dashboard for The Practitioners Pod
// @contact.name    The Practitioners Pod
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Admin token as "Bearer <token>"
func main() {
	cmd.Execute()
}
