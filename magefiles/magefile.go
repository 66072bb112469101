//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Check mg.Namespace

// Runs the test suite.
func (Check) Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs go vet over the module.
func (Check) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

type Run mg.Namespace

// Runs the Ebitengine demo from its directory so a local forest.toml applies.
func (Run) Forest() error {
	_, err := executeCmd("go", withArgs("run", "."), withDir("cmd/forest"), withStream())
	return err
}

// Runs the raw OpenGL demo.
func (Run) ForestGL() error {
	_, err := executeCmd("go", withArgs("run", "./cmd/forestgl"), withStream())
	return err
}
