// Package config holds the TOML-backed tunables every search worker
// reads from, the way frankkopp/FrankyGo's internal/config package
// does: a package-level Settings value, defaults set in init(), an
// optional file overlaid on top via Setup().
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
)

// conf is the root of the configuration tree, mirroring the teacher's
// top-level conf{Log, Search, Eval} shape with an added Smp section
// for the SMP coordinator and time controller.
type conf struct {
	Log    logConfiguration
	Search searchConfiguration
	Eval   evalConfiguration
	Smp    smpConfiguration
}

// Settings is the process-wide configuration, ready to use with its
// compiled-in defaults even if Setup is never called.
var Settings conf

// Setup decodes path over the compiled-in defaults. A missing or
// malformed file is returned as an error; callers that want to run
// with defaults simply don't call Setup.
func Setup(path string) error {
	if path == "" {
		return nil
	}
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		return fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return nil
}

// String renders the current configuration for startup logging, the
// way the teacher's reflection-based conf.String() does.
func (c conf) String() string {
	var b strings.Builder
	printStruct(&b, "", reflect.ValueOf(c))
	return b.String()
}

func printStruct(b *strings.Builder, prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if fv.Kind() == reflect.Struct {
			printStruct(b, prefix+f.Name+".", fv)
			continue
		}
		fmt.Fprintf(b, "%s%s = %v\n", prefix, f.Name, fv.Interface())
	}
}
