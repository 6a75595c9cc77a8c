package contract

import (
	"sort"

	"github.com/pkg/errors"
)

// loadSubmission returns nil, nil for unknown ids.
func (c *Context) loadSubmission(id uint64) (*Submission, error) {
	data := c.stateGetBytes(submissionKey(id))
	if data == nil {
		return nil, nil
	}
	s, err := DecodeSubmission(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load submission %d", id)
	}
	return s, nil
}

func (c *Context) saveSubmission(id uint64, s *Submission) {
	c.stateSetIfChanged(submissionKey(id), EncodeSubmission(s))
}

func (c *Context) loadSubmissionIndex() ([]uint64, error) {
	data := c.stateGetBytes(submissionIndexKey())
	if data == nil {
		return nil, nil
	}
	ids, err := decodeIDList(data)
	if err != nil {
		return nil, errors.Wrap(err, "load submission index")
	}
	return ids, nil
}

func (c *Context) saveSubmissionIndex(ids []uint64) {
	if len(ids) == 0 {
		c.Host.Delete(submissionIndexKey())
		return
	}
	c.stateSetIfChanged(submissionIndexKey(), encodeIDList(ids))
}

// insertSubmission stores a fresh submission and keeps the index sorted.
func (c *Context) insertSubmission(id uint64, s *Submission) error {
	ids, err := c.loadSubmissionIndex()
	if err != nil {
		return err
	}
	pos := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if pos < len(ids) && ids[pos] == id {
		return errors.Errorf("submission %d already indexed", id)
	}
	ids = append(ids, 0)
	copy(ids[pos+1:], ids[pos:])
	ids[pos] = id
	c.saveSubmission(id, s)
	c.saveSubmissionIndex(ids)
	return nil
}

// removeSubmission drops the record and its index entry and decrements the live total.
func (c *Context) removeSubmission(cfg *Config, id uint64) error {
	ids, err := c.loadSubmissionIndex()
	if err != nil {
		return err
	}
	pos := sort.Search(len(ids), func(i int) bool { return ids[i] >= id })
	if pos < len(ids) && ids[pos] == id {
		ids = append(ids[:pos], ids[pos+1:]...)
		c.saveSubmissionIndex(ids)
	}
	c.Host.Delete(submissionKey(id))
	if cfg.SubmissionTotal > 0 {
		cfg.SubmissionTotal--
	}
	return nil
}
