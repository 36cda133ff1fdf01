package sink

import (
	"context"
	"wa-directory/domain"
	"wa-directory/domain/event"
	"wa-directory/repositories"
)

// BlocklistSink persists the shared blocklist whenever it changes, so that a
// restart starts from the last acknowledged state.
type BlocklistSink struct {
	blocklist  *domain.Blocklist
	repository repositories.IBlocklistRepository
}

func NewBlocklistSink(blocklist *domain.Blocklist, repository repositories.IBlocklistRepository) BlocklistSink {
	return BlocklistSink{blocklist: blocklist, repository: repository}
}

func (b BlocklistSink) Consume(ctx context.Context, e event.DomainEvent) error {
	if _, ok := e.(event.BlocklistUpdated); !ok {
		return nil
	}
	return b.repository.Save(ctx, b.blocklist.List())
}
