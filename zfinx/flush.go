// Copyright 2025 go-zfinx Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zfinx

// FlushSubnormal replaces a subnormal x with a zero carrying the sign of x.
// All other values, NaNs included, are returned with their bits untouched.
//
// The modeled unit has no subnormal support, so every float result produced
// by this package passes through here.
func FlushSubnormal(x float32) float32 {
	bits := Bits(x)
	if IsSubnormal(bits) {
		return F32(bits & SignMask)
	}
	return x
}

// finish canonicalizes an arithmetic result: NaNs become CanonicalNaN and
// subnormals are flushed.
func finish(x float32) float32 {
	if isNaN32(x) {
		return F32(CanonicalNaN)
	}
	return FlushSubnormal(x)
}
