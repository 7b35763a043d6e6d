// @title           Influencer Markt API
// @version         1.0
// @description     Two-sided marketplace API connecting brands and influencers (Swagger documentation).
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1

package main

import "github.com/relense/influencer-markt-sub001/internal/app"

func main() {
	app.Run()
}
