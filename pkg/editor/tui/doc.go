// Package tui drives a block editing session from the terminal. Prompts go
// through the PromptDriver interface; the default driver is backed by
// github.com/AlecAivazis/survey/v2.
package tui
