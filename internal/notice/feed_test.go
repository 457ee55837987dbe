package notice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/notice"
)

func TestFeedKeepsMostRecent(t *testing.T) {
	f := notice.NewFeed(2)
	f.Notify(domain.Notice{Level: domain.NoticeInfo, Message: "one"})
	f.Notify(domain.Notice{Level: domain.NoticeError, Message: "two"})
	f.Notify(domain.Notice{Level: domain.NoticeError, Message: "three"})

	pending := f.Pending()
	require.Len(t, pending, 2)
	assert.Equal(t, "two", pending[0].Message)
	assert.False(t, pending[0].At.IsZero())

	drained := f.Drain()
	assert.Equal(t, pending, drained)
	assert.Empty(t, f.Drain())
	assert.NotNil(t, f.Drain())
}
