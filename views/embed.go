package views

import (
	"embed"
	"io/fs"
)

//go:embed assets/*
var embedded embed.FS

// Assets returns the files copied into the site root: style.css.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}
