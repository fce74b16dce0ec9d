package main

import "github.com/spf13/pflag"

// Flag values only win over the loaded configuration when set explicitly.

func overrideString(f *pflag.FlagSet, name string, dst *string) {
	if f.Changed(name) {
		*dst, _ = f.GetString(name)
	}
}

func overrideInt(f *pflag.FlagSet, name string, dst *int) {
	if f.Changed(name) {
		*dst, _ = f.GetInt(name)
	}
}

func overrideInt64(f *pflag.FlagSet, name string, dst *int64) {
	if f.Changed(name) {
		*dst, _ = f.GetInt64(name)
	}
}

func overrideBool(f *pflag.FlagSet, name string, dst *bool) {
	if f.Changed(name) {
		*dst, _ = f.GetBool(name)
	}
}
