// Package assets embeds the starter kit written by "cv2pdf init": a sample
// CV data file, an HTML template that consumes it, and a print stylesheet.
package assets
