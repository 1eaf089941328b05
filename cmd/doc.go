// Package cmd contains command-line utilities for training and evaluating buzzers. It also contains the code shared
// by these utilities, such as loading configuration from a properties file and reporting fatal errors.
package cmd
