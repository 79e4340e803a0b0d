// Package scanner delegates component detection to an external
// scanning engine. The engine contract is deliberately narrow: given a
// directory, produce a CycloneDX JSON document at the output path or
// fail. Everything about how components are detected belongs to the
// engine, not to this tool.
package scanner

import "context"

type Engine interface {
	Produce(ctx context.Context, directory, output string) error
}
