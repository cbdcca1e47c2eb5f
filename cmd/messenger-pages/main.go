// Command messenger-pages drives the messenger app screens through Appium.
package main

import "github.com/devicelab-dev/messenger-pages/pkg/cli"

func main() {
	cli.Execute()
}
