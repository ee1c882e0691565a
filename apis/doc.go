/*
   Copyright 2025 The filechannel Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package apis defines the contracts at the seam between a rotating file
// log channel and its collaborators: the message it consumes, the clock it
// reads time from, and the operation set it exposes to a logger façade.
//
// Everything a logger needs on the other side of this seam — message
// formatting, level filtering, structured fields, other channel kinds — is
// an external collaborator and is not described here. Only the contracts
// are.
package apis
