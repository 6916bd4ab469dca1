package assert

type TestingT interface {
	Errorf(format string, args ...interface{})
}

func ErrorIs(t TestingT, err, target error, msgAndArgs ...interface{}) bool { return true }

func Error(t TestingT, err error, msgAndArgs ...interface{}) bool { return true }
