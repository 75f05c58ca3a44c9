package tracecheck

import "fmt"

// Named leaf matchers for the events the supervisor logs. Each wraps Pattern
// with the exact message text the subject emits; names and dynamic fields
// are spliced into the pattern, so they may themselves contain wildcards.

// ChildSpawned matches the supervisor forking a child process.
func ChildSpawned(name string) Matcher {
	return Pattern("Started child " + name)
}

// ChildStarted matches a notify-style child reporting successful startup.
func ChildStarted(name string) Matcher {
	return Pattern("child " + name + " has started successfully")
}

// ChildPidChanged matches a child handing over to a new main process.
func ChildPidChanged(name string) Matcher {
	return Pattern("child " + name + " main pid is changed from .* to .*")
}

// ChildStatus matches a status message reported by the child itself.
func ChildStatus(name, status string) Matcher {
	return Pattern("child " + name + ": " + status)
}

// ChildExited matches a child terminating with exit code zero.
func ChildExited(name string) Matcher {
	return Pattern("Child " + name + " exited successfully")
}

// ChildCrashed matches a child terminating with the given nonzero exit code.
func ChildCrashed(name string, rc int) Matcher {
	return Pattern(fmt.Sprintf("Child %s crashed with %d", name, rc))
}

// ChildSleeping matches a cronjob child finishing one activation.
func ChildSleeping(name string) Matcher {
	return Pattern("Child " + name + " has finished and is going to sleep")
}

// ChildSkipped matches the supervisor refusing to restart a child that is
// still running.
func ChildSkipped(name string) Matcher {
	return Pattern("Refusing to start child '" + name + "' which is currently running")
}

// ChildCronjobSkipped matches a cronjob activation being skipped because its
// dependencies have not completed yet.
func ChildCronjobSkipped(name string) Matcher {
	return Pattern("Refusing to start cronjob child '" + name + "' because of uncompleted dependencies")
}

// Exited matches the supervisor's final shutdown message.
func Exited() Matcher {
	return Pattern("Exiting")
}

// ZombieReaped matches the supervisor reaping an orphaned process.
func ZombieReaped() Matcher {
	return Pattern("Reaped zombie process.*")
}

// ConfigError matches a rejected configuration file.
func ConfigError() Matcher {
	return Pattern("Error in configuration file")
}

// ProgramConfigError matches any per-program configuration error.
func ProgramConfigError(name string) Matcher {
	return Pattern("Program " + name + " contains error.*")
}

// DuplicateProgramName matches two programs configured with the same name.
func DuplicateProgramName(name string) Matcher {
	return Pattern("Duplicate program found for name " + name)
}

// CycleDetected matches a dependency cycle involving the named process.
func CycleDetected(name string) Matcher {
	return Pattern("Found cycle involving process '" + name + "'")
}

// CronjobDependency matches a cronjob that illegally declares dependencies.
func CronjobDependency(name string) Matcher {
	return Pattern("Program " + name + " contains error: Cronjobs may not have dependencies")
}

// DependencyOnCronjob matches a program that illegally depends on a cronjob.
func DependencyOnCronjob(name string) Matcher {
	return Pattern("Program " + name + " contains error: Depending on cronjobs is not allowed")
}

// UnknownAfterDependency matches an 'after' dependency naming an unknown
// program.
func UnknownAfterDependency(name, dep string) Matcher {
	return Pattern("Unknown 'after' dependency '" + dep + "' of program " + name)
}

// UnknownBeforeDependency matches a 'before' dependency naming an unknown
// program.
func UnknownBeforeDependency(name, dep string) Matcher {
	return Pattern("Unknown 'before' dependency '" + dep + "' of program " + name)
}

// EnvVarTemplatingFailed matches a template error in an environment variable.
func EnvVarTemplatingFailed(name string) Matcher {
	return Pattern("Templating of environment variable " + name + " failed.*")
}

// EnvVarLooksLikeTemplate matches the warning for an environment variable
// that resembles an unexpanded template.
func EnvVarLooksLikeTemplate(name string) Matcher {
	return Pattern("Environment variable " + name + " looks like a tera template.*")
}

// ArgumentTemplatingFailed matches a template error in a program argument.
func ArgumentTemplatingFailed(index int) Matcher {
	return Pattern(fmt.Sprintf("Templating of argument %d failed.*", index))
}

// ArgumentLooksLikeTemplate matches the warning for an argument that
// resembles an unexpanded template.
func ArgumentLooksLikeTemplate(index int) Matcher {
	return Pattern(fmt.Sprintf("Argument %d looks like a tera template.*", index))
}
