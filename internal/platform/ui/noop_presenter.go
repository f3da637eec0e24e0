// internal/platform/ui/noop_presenter.go
package ui

// NoopPresenter discards everything. Used with --quiet and in tests.
type NoopPresenter struct{}

func NewNoopPresenter() *NoopPresenter {
	return &NoopPresenter{}
}

func (n *NoopPresenter) Start(SessionInfo)       {}
func (n *NoopPresenter) StartStage(StageInfo)    {}
func (n *NoopPresenter) FinishStage(StageResult) {}
func (n *NoopPresenter) Info(string)             {}
func (n *NoopPresenter) Warning(string)          {}
func (n *NoopPresenter) Error(string)            {}
func (n *NoopPresenter) Finish(RunSummary)       {}
func (n *NoopPresenter) Close() error            { return nil }
