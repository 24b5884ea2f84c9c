// Package utils provides common utility functions for the milvus-server launcher.
// It includes the value conversions used when caller overrides and command-line
// values are written into the variable table.
package utils
