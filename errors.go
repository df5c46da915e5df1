/*
Copyright © 2025 the FieldView authors.
This file is part of FieldView.

FieldView is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FieldView is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FieldView.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldview

import "fmt"

// ConfigurationError is returned by SetParameters when the supplied
// parameters are invalid. The engine keeps its previous configuration.
type ConfigurationError struct {
	msg string
}

func configErrorf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "fieldview: invalid configuration: " + e.msg
}

// ComputationError reports an unexpected failure during an interpolation
// pass. Cancellation of a pass is not a ComputationError; cancelled passes
// are discarded silently.
type ComputationError struct {
	Resolution ResolutionTag
	Err        error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("fieldview: while computing %s pass: %v", e.Resolution, e.Err)
}

func (e *ComputationError) Unwrap() error { return e.Err }
