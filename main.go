package main

import "github.com/atelierlibre/posecue/cmd"

func main() {
	cmd.Execute()
}
