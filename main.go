// Command release-manager schedules releases and persists their definition
// into the GitHub and GitLab release repositories.
package main

import "github.com/apiarycd/release-manager/internal"

func main() {
	internal.Run()
}
