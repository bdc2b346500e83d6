// Package lib holds helpers that do not fit strictly into other layers.
package lib
