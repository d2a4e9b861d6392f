// Package banner renders the startup banner printed by the CLI.
package banner

import "fmt"

const logo = `  _            _
 | |_ _____ __| |___ _____ __
 |  _/ -_) \ /  _\ V / -_) _|
  \__\___/_\_\\__|\_/\___\__|
`

// Banner returns the logo followed by the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s  textvec %s\n\n", logo, version)
}
