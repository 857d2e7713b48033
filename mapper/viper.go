/*
   Copyright 2025 The Kismet Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package mapper

import (
	"fmt"

	"github.com/kukalajet/kismet/tag"
	"github.com/spf13/viper"
	"google.golang.org/grpc/codes"
)

// tagRule is one configured mapping for an exact tag.
// A zero HTTP or GRPC value means "leave that transport alone".
type tagRule struct {
	Tag  string `mapstructure:"tag"`
	HTTP int    `mapstructure:"http"`
	GRPC int    `mapstructure:"grpc"`
}

// prefixFileRule is one configured LPM rule.
type prefixFileRule struct {
	Prefix string `mapstructure:"prefix"`
	HTTP   int    `mapstructure:"http"`
	GRPC   int    `mapstructure:"grpc"`
}

// fileConfig is the on-disk shape of mapper configuration.
//
// Tags appear as list entries, not as map keys: viper lowercases map keys,
// which would corrupt case-sensitive tags like "NotFound".
type fileConfig struct {
	Defaults  []tagRule        `mapstructure:"defaults"`
	Overrides []tagRule        `mapstructure:"overrides"`
	Prefixes  []prefixFileRule `mapstructure:"prefixes"`
	Fallback  struct {
		HTTP int `mapstructure:"http"`
		GRPC int `mapstructure:"grpc"`
	} `mapstructure:"fallback"`
}

// FromViper reads mapper options from a viper instance, typically scoped to
// the mapper's own config section:
//
//	defaults:
//	  - {tag: Conflict, http: 409, grpc: 10}
//	overrides:
//	  - {tag: Canceled, http: 499}
//	prefixes:
//	  - {prefix: storage.pg, http: 503, grpc: 14}
//	fallback: {http: 500, grpc: 13}
//
// The returned options are applied on top of the library defaults by New:
//
//	opts, err := mapper.FromViper(v.Sub("mapper"))
//	...
//	m, err := mapper.New(opts...)
//
// Tags are validated here; prefixes are validated later by New. A zero
// http/grpc value in a rule leaves that transport's mapping untouched, so a
// rule can adjust one side only. Note that codes.OK (0) therefore cannot be
// configured as a fault mapping, which is intended — a fault never maps to OK.
func FromViper(v *viper.Viper) ([]Option, error) {
	if v == nil {
		return nil, nil
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("mapper: cannot decode config: %w", err)
	}

	var opts []Option

	for _, r := range cfg.Defaults {
		t, err := tag.Parse(r.Tag)
		if err != nil {
			return nil, fmt.Errorf("mapper: invalid tag %q in defaults: %w", r.Tag, err)
		}
		if r.HTTP != 0 {
			opts = append(opts, WithHTTPDefault(t, r.HTTP))
		}
		if r.GRPC != 0 {
			opts = append(opts, WithGRPCDefault(t, r.GRPC))
		}
	}

	for _, r := range cfg.Overrides {
		t, err := tag.Parse(r.Tag)
		if err != nil {
			return nil, fmt.Errorf("mapper: invalid tag %q in overrides: %w", r.Tag, err)
		}
		if r.HTTP != 0 {
			opts = append(opts, WithHTTPOverride(t, r.HTTP))
		}
		if r.GRPC != 0 {
			opts = append(opts, WithGRPCOverride(t, r.GRPC))
		}
	}

	for _, r := range cfg.Prefixes {
		if r.HTTP != 0 {
			opts = append(opts, WithHTTPPrefix(r.Prefix, r.HTTP))
		}
		if r.GRPC != 0 {
			opts = append(opts, WithGRPCPrefix(r.Prefix, r.GRPC))
		}
	}

	if cfg.Fallback.HTTP != 0 || cfg.Fallback.GRPC != 0 {
		opts = append(opts, WithFallback(cfg.Fallback.HTTP, codes.Code(cfg.Fallback.GRPC)))
	}

	return opts, nil
}
