package logs

import (
	"context"
	"errors"
	"fmt"
)

func WrapInstance(ctx context.Context, err error) error {
	instance := InstanceOf(ctx)
	if instance == "" {
		return err
	}
	return errors.Join(err, fmt.Errorf("instance: %s", instance))
}
