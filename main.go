package main

import "github.com/khaldoun36/GritSeason/cmd/grit"

func main() {
	grit.Execute()
}
